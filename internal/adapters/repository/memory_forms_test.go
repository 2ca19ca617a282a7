package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerjs93/health-entry-engine/internal/adapters/repository"
	"github.com/rogerjs93/health-entry-engine/internal/core/domain"
)

func TestInMemoryFormStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Save then GetByID returns the snapshot", func(t *testing.T) {
		store := repository.NewInMemoryFormStore()

		form, err := domain.NewFormState(domain.TimeFrameWeek)
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, form))

		got, err := store.GetByID(ctx, form.ID)
		require.NoError(t, err)
		assert.Equal(t, form, got)
	})

	t.Run("Success: Save replaces the previous snapshot", func(t *testing.T) {
		store := repository.NewInMemoryFormStore()

		form, _ := domain.NewFormState(domain.TimeFrameDay)
		require.NoError(t, store.Save(ctx, form))

		updated, err := form.WithVital(domain.FieldPulseRate, 0, 60)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, updated))

		got, err := store.GetByID(ctx, form.ID)
		require.NoError(t, err)
		assert.Equal(t, 60.0, got.Vitals.PulseRate[0])
	})

	t.Run("Error: Unknown form", func(t *testing.T) {
		store := repository.NewInMemoryFormStore()

		_, err := store.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrFormNotFound)
	})

	t.Run("Success: Delete removes the form", func(t *testing.T) {
		store := repository.NewInMemoryFormStore()

		form, _ := domain.NewFormState(domain.TimeFrameDay)
		require.NoError(t, store.Save(ctx, form))
		require.NoError(t, store.Delete(ctx, form.ID))

		_, err := store.GetByID(ctx, form.ID)
		assert.ErrorIs(t, err, domain.ErrFormNotFound)

		assert.ErrorIs(t, store.Delete(ctx, form.ID), domain.ErrFormNotFound)
	})
}
