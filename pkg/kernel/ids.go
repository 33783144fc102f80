package kernel

import "github.com/google/uuid"

// DocumentID identifies an uploaded resume or job description document
type DocumentID string

func NewDocumentID() DocumentID {
	return DocumentID(uuid.New().String())
}

func (id DocumentID) String() string {
	return string(id)
}

func (id DocumentID) IsEmpty() bool {
	return id == ""
}

// BatchJobID identifies an asynchronous ranking job
type BatchJobID string

func NewBatchJobID() BatchJobID {
	return BatchJobID(uuid.New().String())
}

func (id BatchJobID) String() string {
	return string(id)
}

func (id BatchJobID) IsEmpty() bool {
	return id == ""
}

// UserID identifies an API user
type UserID string

func NewUserID() UserID {
	return UserID(uuid.New().String())
}

func (id UserID) String() string {
	return string(id)
}

func (id UserID) IsEmpty() bool {
	return id == ""
}

// TenantID identifies the tenant an API user belongs to
type TenantID string

func (id TenantID) String() string {
	return string(id)
}

func (id TenantID) IsEmpty() bool {
	return id == ""
}
