package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lakshraina2/resume-scanner/pkg/errx"
	"github.com/lakshraina2/resume-scanner/pkg/kernel"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	ErrInvalidToken = ErrRegistry.Register(
		"INVALID_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid or expired token")
	ErrMissingToken = ErrRegistry.Register(
		"MISSING_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Authorization token required")
	ErrTokenGeneration = ErrRegistry.Register(
		"TOKEN_GENERATION", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate token")
)

// TokenClaims are the validated contents of an access token
type TokenClaims struct {
	UserID    kernel.UserID
	TenantID  kernel.TenantID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and validates JWT access tokens
type TokenService struct {
	secret   []byte
	issuer   string
	duration time.Duration
}

func NewTokenService(secret, issuer string, duration time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		duration: duration,
	}
}

// GenerateAccessToken signs a token for the given user with optional extra claims
func (s *TokenService) GenerateAccessToken(userID kernel.UserID, tenantID kernel.TenantID, extra map[string]any) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       userID.String(),
		"tenant_id": tenantID.String(),
		"iss":       s.issuer,
		"iat":       now.Unix(),
		"exp":       now.Add(s.duration).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", ErrRegistry.NewWithCause(ErrTokenGeneration, err)
	}
	return signed, nil
}

// ValidateAccessToken parses and verifies a token string
func (s *TokenService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrRegistry.NewWithCause(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrRegistry.New(ErrInvalidToken)
	}

	result := &TokenClaims{}
	if sub, ok := claims["sub"].(string); ok {
		result.UserID = kernel.UserID(sub)
	}
	if tenant, ok := claims["tenant_id"].(string); ok {
		result.TenantID = kernel.TenantID(tenant)
	}
	if email, ok := claims["email"].(string); ok {
		result.Email = email
	}
	if exp, ok := claims["exp"].(float64); ok {
		result.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return result, nil
}
