package upstream

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/rogerjs93/health-entry-engine/internal/core/domain"
)

// Client talks to the external analysis backend. Retries are deliberately
// off: a failed save is surfaced to the user, who resubmits manually.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// errorBody is the backend's uniform failure envelope.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   client,
		logger: logger,
	}
}

// SubmitHealthData posts one assembled record to /api/health-data.
func (c *Client) SubmitHealthData(ctx context.Context, payload domain.SubmissionPayload) (*domain.SubmitReceipt, error) {
	var (
		receipt domain.SubmitReceipt
		failure errorBody
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&receipt).
		SetError(&failure).
		Post("/api/health-data")

	if err != nil {
		c.logger.Error("health-data request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}

	if !resp.IsSuccess() {
		return nil, c.rejection(resp, failure)
	}

	c.logger.Info("health data accepted",
		zap.String("record_id", receipt.RecordID),
	)

	return &receipt, nil
}

// BatchUpload forwards files as multipart parts named file0, file1, ...,
// keeping each file's name, content type, and bytes intact.
func (c *Client) BatchUpload(ctx context.Context, files []domain.UploadedFile) (*domain.UploadReceipt, error) {
	var (
		receipt domain.UploadReceipt
		failure errorBody
	)

	req := c.http.R().
		SetContext(ctx).
		SetResult(&receipt).
		SetError(&failure)

	for i, f := range files {
		req.SetMultipartField(
			fmt.Sprintf("file%d", i),
			f.Name,
			f.ContentType,
			bytes.NewReader(f.Content),
		)
	}

	resp, err := req.Post("/api/batch-upload")
	if err != nil {
		c.logger.Error("batch-upload request failed",
			zap.Int("file_count", len(files)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}

	if !resp.IsSuccess() {
		return nil, c.rejection(resp, failure)
	}

	c.logger.Info("batch upload accepted",
		zap.Int("file_count", len(files)),
		zap.String("message", receipt.Message),
	)

	return &receipt, nil
}

// Ping hits the backend's connection-test endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/api/test-connection")

	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: status %d", domain.ErrUpstreamRejected, resp.StatusCode())
	}
	return nil
}

// rejection turns a non-2xx answer into an error carrying the backend's own
// message when it sent one, a generic one otherwise.
func (c *Client) rejection(resp *resty.Response, failure errorBody) error {
	msg := failure.Message
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.StatusCode())
	}

	c.logger.Error("upstream rejected request",
		zap.Int("status_code", resp.StatusCode()),
		zap.String("message", msg),
	)

	return fmt.Errorf("%w: %s", domain.ErrUpstreamRejected, msg)
}
