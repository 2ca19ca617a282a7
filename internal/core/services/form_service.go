package services

import (
	"context"

	"github.com/rogerjs93/health-entry-engine/internal/core/domain"
)

// Scheduler is the debounced auto-save hook: every successful edit schedules
// a save, teardown cancels whatever is pending.
type Scheduler interface {
	Schedule(formID string)
	Cancel(formID string)
}

type FormService struct {
	store     domain.FormStore
	scheduler Scheduler
}

func NewFormService(store domain.FormStore, scheduler Scheduler) *FormService {
	return &FormService{
		store:     store,
		scheduler: scheduler,
	}
}

// Open creates an empty form. An empty frame string defaults to single-day
// entry, matching the form's initial view.
func (s *FormService) Open(ctx context.Context, frame string) (domain.FormState, error) {
	if frame == "" {
		frame = string(domain.TimeFrameDay)
	}

	tf, err := domain.ParseTimeFrame(frame)
	if err != nil {
		return domain.FormState{}, err
	}

	form, err := domain.NewFormState(tf)
	if err != nil {
		return domain.FormState{}, err
	}

	if err := s.store.Save(ctx, form); err != nil {
		return domain.FormState{}, err
	}

	return form, nil
}

func (s *FormService) Get(ctx context.Context, id string) (domain.FormState, error) {
	return s.store.GetByID(ctx, id)
}

// apply loads a form, runs one reducer step, persists the result and
// schedules an auto-save. The reducer never sees a stale state because the
// store always holds the latest snapshot.
func (s *FormService) apply(ctx context.Context, id string, reduce func(domain.FormState) (domain.FormState, error)) (domain.FormState, error) {
	form, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.FormState{}, err
	}

	next, err := reduce(form)
	if err != nil {
		return domain.FormState{}, err
	}

	if err := s.store.Save(ctx, next); err != nil {
		return domain.FormState{}, err
	}

	s.scheduler.Schedule(id)

	return next, nil
}

func (s *FormService) SetTimeFrame(ctx context.Context, id, frame string) (domain.FormState, error) {
	tf, err := domain.ParseTimeFrame(frame)
	if err != nil {
		return domain.FormState{}, err
	}

	return s.apply(ctx, id, func(f domain.FormState) (domain.FormState, error) {
		return f.WithTimeFrame(tf)
	})
}

func (s *FormService) UpdateVital(ctx context.Context, id, field string, index int, value float64) (domain.FormState, error) {
	return s.apply(ctx, id, func(f domain.FormState) (domain.FormState, error) {
		return f.WithVital(domain.VitalField(field), index, value)
	})
}

func (s *FormService) UpdateBody(ctx context.Context, id, field string, value *float64) (domain.FormState, error) {
	return s.apply(ctx, id, func(f domain.FormState) (domain.FormState, error) {
		return f.WithBodyField(domain.BodyField(field), value)
	})
}

func (s *FormService) UpdateSleep(ctx context.Context, id, stage string, hours float64) (domain.FormState, error) {
	return s.apply(ctx, id, func(f domain.FormState) (domain.FormState, error) {
		return f.WithSleepStage(domain.SleepStage(stage), hours)
	})
}

// Close tears a form down: the pending auto-save is cancelled first so a
// discarded form can never submit afterwards.
func (s *FormService) Close(ctx context.Context, id string) error {
	s.scheduler.Cancel(id)
	return s.store.Delete(ctx, id)
}
