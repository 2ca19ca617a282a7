package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rogerjs93/health-entry-engine/internal/core/domain"
)

type SubmitService struct {
	store   domain.FormStore
	gateway domain.HealthDataGateway
	notices *NoticeService
	logger  *zap.Logger
}

func NewSubmitService(store domain.FormStore, gateway domain.HealthDataGateway, notices *NoticeService, logger *zap.Logger) *SubmitService {
	return &SubmitService{
		store:   store,
		gateway: gateway,
		notices: notices,
		logger:  logger,
	}
}

// Submit assembles the form's flat payload and posts it upstream. Failures
// are logged and surfaced as a transient error notice; there is no retry,
// the user resubmits manually. The form itself stays open either way.
func (s *SubmitService) Submit(ctx context.Context, formID string) (*domain.SubmitReceipt, error) {
	form, err := s.store.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.gateway.SubmitHealthData(ctx, form.Payload(time.Now()))
	if err != nil {
		s.logger.Error("health data submission failed",
			zap.String("form_id", formID),
			zap.Error(err),
		)
		s.notices.Push(NoticeError, "Failed to save health data: "+err.Error())
		return nil, err
	}

	s.notices.Push(NoticeInfo, "Health data saved")

	return receipt, nil
}

// Upload forwards the selected files to the backend's batch endpoint.
// Content is passed through untouched; all parsing is the backend's job.
func (s *SubmitService) Upload(ctx context.Context, files []domain.UploadedFile) (*domain.UploadReceipt, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoFilesSelected
	}

	receipt, err := s.gateway.BatchUpload(ctx, files)
	if err != nil {
		s.logger.Error("batch upload failed",
			zap.Int("file_count", len(files)),
			zap.Error(err),
		)
		s.notices.Push(NoticeError, "Failed to upload files: "+err.Error())
		return nil, err
	}

	s.notices.Push(NoticeInfo, receipt.Message)

	return receipt, nil
}
