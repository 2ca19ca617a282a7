package domain

import (
	"context"
	"encoding/json"
)

// SubmitReceipt is the backend's answer to a health-data submission.
type SubmitReceipt struct {
	Status         string          `json:"status"`
	Message        string          `json:"message"`
	RecordID       string          `json:"id"`
	RiskAssessment json.RawMessage `json:"risk_assessment,omitempty"`
}

// UploadedFile carries one file of a batch upload, content and type
// preserved byte for byte. Parsing happens upstream, never here.
type UploadedFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// UploadFileResult is the per-file outcome reported by the backend.
type UploadFileResult struct {
	Filename string `json:"filename"`
	ID       string `json:"id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadReceipt is the backend's answer to a batch upload.
type UploadReceipt struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Results []UploadFileResult `json:"results"`
}

// HealthDataGateway is the outbound port to the external analysis backend.
type HealthDataGateway interface {
	// SubmitHealthData posts one assembled record to /api/health-data.
	SubmitHealthData(ctx context.Context, payload SubmissionPayload) (*SubmitReceipt, error)

	// BatchUpload forwards raw files to /api/batch-upload, one multipart
	// part per file.
	BatchUpload(ctx context.Context, files []UploadedFile) (*UploadReceipt, error)

	// Ping checks backend reachability for health reporting.
	Ping(ctx context.Context) error
}
