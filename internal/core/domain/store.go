package domain

import "context"

type FormStore interface {
	// Save persists the given state snapshot, replacing any previous one.
	Save(ctx context.Context, form FormState) error

	// GetByID retrieves the latest snapshot of a form.
	GetByID(ctx context.Context, id string) (FormState, error)

	// Delete removes a form; used on teardown.
	Delete(ctx context.Context, id string) error
}
