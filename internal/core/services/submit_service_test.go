package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rogerjs93/health-entry-engine/internal/core/domain"
	"github.com/rogerjs93/health-entry-engine/internal/core/services"
)

type MockGateway struct {
	submitReceipt *domain.SubmitReceipt
	submitErr     error
	uploadReceipt *domain.UploadReceipt
	uploadErr     error

	submitted []domain.SubmissionPayload
	uploaded  [][]domain.UploadedFile
}

func (m *MockGateway) SubmitHealthData(ctx context.Context, payload domain.SubmissionPayload) (*domain.SubmitReceipt, error) {
	m.submitted = append(m.submitted, payload)
	return m.submitReceipt, m.submitErr
}

func (m *MockGateway) BatchUpload(ctx context.Context, files []domain.UploadedFile) (*domain.UploadReceipt, error) {
	m.uploaded = append(m.uploaded, files)
	return m.uploadReceipt, m.uploadErr
}

func (m *MockGateway) Ping(ctx context.Context) error { return nil }

func setupSubmit(t *testing.T, gw *MockGateway) (*services.SubmitService, *services.NoticeService, domain.FormState) {
	t.Helper()

	store := NewMockFormStore()
	notices := services.NewNoticeService(time.Minute)
	svc := services.NewSubmitService(store, gw, notices, zap.NewNop())

	form, err := domain.NewFormState(domain.TimeFrameDay)
	require.NoError(t, err)
	form, err = form.WithVital(domain.FieldSystolic, 0, 120)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), form))

	return svc, notices, form
}

func TestSubmitService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Posts assembled payload and pushes info notice", func(t *testing.T) {
		gw := &MockGateway{
			submitReceipt: &domain.SubmitReceipt{Status: "success", RecordID: "abc123"},
		}
		svc, notices, form := setupSubmit(t, gw)

		receipt, err := svc.Submit(ctx, form.ID)
		require.NoError(t, err)
		assert.Equal(t, "abc123", receipt.RecordID)

		require.Len(t, gw.submitted, 1)
		assert.Equal(t, 120.0, gw.submitted[0].BloodPressure.Systolic)

		active := notices.Active()
		require.Len(t, active, 1)
		assert.Equal(t, services.NoticeInfo, active[0].Level)
	})

	t.Run("Error: Upstream failure becomes an error notice, no retry", func(t *testing.T) {
		gw := &MockGateway{submitErr: domain.ErrUpstreamUnreachable}
		svc, notices, form := setupSubmit(t, gw)

		_, err := svc.Submit(ctx, form.ID)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnreachable)

		assert.Len(t, gw.submitted, 1, "exactly one attempt, never retried")

		active := notices.Active()
		require.Len(t, active, 1)
		assert.Equal(t, services.NoticeError, active[0].Level)
		assert.Contains(t, active[0].Message, "Failed to save")
	})

	t.Run("Error: Unknown form never reaches the gateway", func(t *testing.T) {
		gw := &MockGateway{}
		svc, _, _ := setupSubmit(t, gw)

		_, err := svc.Submit(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrFormNotFound)
		assert.Empty(t, gw.submitted)
	})
}

func TestSubmitService_Upload(t *testing.T) {
	ctx := context.Background()

	files := []domain.UploadedFile{
		{Name: "vitals.csv", ContentType: "text/csv", Content: []byte("a,b\n1,2\n")},
		{Name: "sleep.json", ContentType: "application/json", Content: []byte(`{"x":1}`)},
	}

	t.Run("Success: Files forwarded untouched", func(t *testing.T) {
		gw := &MockGateway{
			uploadReceipt: &domain.UploadReceipt{
				Status:  "success",
				Message: "Processed 2 files successfully (0 failed)",
				Results: []domain.UploadFileResult{
					{Filename: "vitals.csv", ID: "id1"},
					{Filename: "sleep.json", ID: "id2"},
				},
			},
		}
		svc, notices, _ := setupSubmit(t, gw)

		receipt, err := svc.Upload(ctx, files)
		require.NoError(t, err)
		assert.Len(t, receipt.Results, 2)

		require.Len(t, gw.uploaded, 1)
		assert.Equal(t, files, gw.uploaded[0])

		active := notices.Active()
		require.Len(t, active, 1)
		assert.Contains(t, active[0].Message, "Processed 2 files")
	})

	t.Run("Error: Empty selection rejected locally", func(t *testing.T) {
		gw := &MockGateway{}
		svc, _, _ := setupSubmit(t, gw)

		_, err := svc.Upload(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrNoFilesSelected)
		assert.Empty(t, gw.uploaded)
	})

	t.Run("Error: Upstream rejection surfaces as notice", func(t *testing.T) {
		gw := &MockGateway{uploadErr: domain.ErrUpstreamRejected}
		svc, notices, _ := setupSubmit(t, gw)

		_, err := svc.Upload(ctx, files)
		assert.ErrorIs(t, err, domain.ErrUpstreamRejected)

		active := notices.Active()
		require.Len(t, active, 1)
		assert.Equal(t, services.NoticeError, active[0].Level)
	})
}

func TestNoticeService(t *testing.T) {
	t.Run("Success: Notices expire on their own", func(t *testing.T) {
		notices := services.NewNoticeService(20 * time.Millisecond)

		notices.Push(services.NoticeInfo, "saved")
		require.Len(t, notices.Active(), 1)

		time.Sleep(30 * time.Millisecond)
		assert.Empty(t, notices.Active())
	})

	t.Run("Success: Oldest first, expired evicted among live ones", func(t *testing.T) {
		notices := services.NewNoticeService(time.Minute)

		first := notices.Push(services.NoticeError, "first")
		second := notices.Push(services.NoticeInfo, "second")

		active := notices.Active()
		require.Len(t, active, 2)
		assert.Equal(t, first.ID, active[0].ID)
		assert.Equal(t, second.ID, active[1].ID)
	})
}
