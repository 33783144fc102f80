// Package resumeparser extracts structured resume fields with an LLM.
// It is an optional enrichment: the manual parser always runs, and the
// pipeline degrades cleanly when no API key is configured or a call
// fails.
package resumeparser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
)

// ResumeParser handles structured resume extraction using OpenAI
type ResumeParser struct {
	client *openai.Client
}

var _ analysis.RichParser = (*ResumeParser)(nil)

// NewResumeParser creates a new resume parser
func NewResumeParser(apiKey string) *ResumeParser {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &ResumeParser{
		client: &client,
	}
}

const systemPrompt = `You are a professional resume parser. Extract ALL information from the resume text and return ONLY valid JSON.`

const userPromptTemplate = `Extract all information from this resume text in the following JSON structure:

{
  "name": string (full name of the candidate),
  "email": string or string[] (email addresses),
  "mobile_number": string (primary phone number),
  "skills": string[] (technical and soft skills),
  "college_name": string or string[] (educational institutions),
  "degree": string or string[] (degrees earned),
  "designation": string or string[] (job titles held),
  "company_names": string or string[] (employers),
  "total_experience": number (total years of experience, integer),
  "no_of_pages": number (leave as 1 if unknown)
}

IMPORTANT:
- Extract ALL information accurately
- If a field is not available, omit it or use an empty value
- Return ONLY the JSON, no explanatory text

Resume text:

%s`

// Parse sends the resume text for structured extraction and returns
// the raw record for merging with the manual parse
func (p *ResumeParser) Parse(ctx context.Context, resumeText string) (*analysis.RawRecord, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(fmt.Sprintf(userPromptTemplate, resumeText)),
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    "gpt-4o",
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1), // Low temperature for consistency
		MaxTokens:   openai.Int(4000),
	})

	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	content := completion.Choices[0].Message.Content
	var record analysis.RawRecord
	if err := json.Unmarshal([]byte(content), &record); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}

	return &record, nil
}
