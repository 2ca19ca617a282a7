package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rogerjs93/health-entry-engine/internal/core/domain"
)

func fptr(v float64) *float64 { return &v }

func TestComputeBMI(t *testing.T) {
	t.Run("Success: Basic formula", func(t *testing.T) {
		bmi := domain.ComputeBMI(170, 70, nil, nil)
		assert.Equal(t, 24.2, bmi)
	})

	t.Run("Success: Composition adjustment lowers BMI for muscular build", func(t *testing.T) {
		// factor = 1 + (0.45 - 0.10) = 1.35, 24.2 / 1.35 = 17.9
		bmi := domain.ComputeBMI(170, 70, fptr(10), fptr(45))
		assert.Equal(t, 17.9, bmi)
	})

	t.Run("Success: Composition adjustment raises BMI for high fat", func(t *testing.T) {
		plain := domain.ComputeBMI(170, 70, nil, nil)
		adjusted := domain.ComputeBMI(170, 70, fptr(40), fptr(20))
		assert.Greater(t, adjusted, plain)
	})

	t.Run("Edge Case: Non-positive height or weight yields sentinel zero", func(t *testing.T) {
		assert.Equal(t, 0.0, domain.ComputeBMI(0, 70, nil, nil))
		assert.Equal(t, 0.0, domain.ComputeBMI(-10, 70, nil, nil))
		assert.Equal(t, 0.0, domain.ComputeBMI(170, 0, nil, nil))
		assert.Equal(t, 0.0, domain.ComputeBMI(170, -5, nil, nil))
	})

	t.Run("Edge Case: Only one composition value present uses basic formula", func(t *testing.T) {
		assert.Equal(t, 24.2, domain.ComputeBMI(170, 70, fptr(10), nil))
		assert.Equal(t, 24.2, domain.ComputeBMI(170, 70, nil, fptr(45)))
	})
}

func TestClassifyBMI(t *testing.T) {
	tests := []struct {
		name       string
		bmi        float64
		bodyFat    *float64
		muscleMass *float64
		want       string
	}{
		{name: "Invalid: zero", bmi: 0, want: domain.CategoryInvalid},
		{name: "Invalid: negative", bmi: -1, want: domain.CategoryInvalid},
		{name: "Standard: underweight", bmi: 17.0, want: domain.CategoryUnderweight},
		{name: "Standard: normal", bmi: 24.2, want: domain.CategoryNormal},
		{name: "Standard: overweight", bmi: 27.0, want: domain.CategoryOverweight},
		{name: "Standard: obese", bmi: 31.0, want: domain.CategoryObese},
		{name: "Boundary: 18.5 lands in normal", bmi: 18.5, want: domain.CategoryNormal},
		{name: "Boundary: 25 lands in overweight", bmi: 25.0, want: domain.CategoryOverweight},
		{name: "Boundary: 30 lands in obese", bmi: 30.0, want: domain.CategoryObese},
		{
			name:       "Athletic: low BMI with athletic composition",
			bmi:        23.0,
			bodyFat:    fptr(15),
			muscleMass: fptr(40),
			want:       domain.CategoryAthletic,
		},
		{
			name:       "Muscular: BMI 27 with athletic composition",
			bmi:        27.0,
			bodyFat:    fptr(20),
			muscleMass: fptr(40),
			want:       domain.CategoryMuscular,
		},
		{
			name:       "Athletic gate falls through to standard bands above 30",
			bmi:        32.0,
			bodyFat:    fptr(20),
			muscleMass: fptr(40),
			want:       domain.CategoryObese,
		},
		{
			name:       "Athletic gate closed when fat too high",
			bmi:        23.0,
			bodyFat:    fptr(26),
			muscleMass: fptr(40),
			want:       domain.CategoryNormal,
		},
		{
			name:       "Athletic gate closed when muscle too low",
			bmi:        23.0,
			bodyFat:    fptr(15),
			muscleMass: fptr(30),
			want:       domain.CategoryNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ClassifyBMI(tt.bmi, tt.bodyFat, tt.muscleMass)
			assert.Equal(t, tt.want, got.Category)
			assert.NotEmpty(t, got.Description)
		})
	}

	t.Run("Success: Classification is idempotent", func(t *testing.T) {
		first := domain.ClassifyBMI(24.2, fptr(15), fptr(40))
		second := domain.ClassifyBMI(24.2, fptr(15), fptr(40))
		assert.Equal(t, first, second)
	})
}

func TestBodyMetrics_WithField(t *testing.T) {
	t.Run("Success: BMI recomputed on every height/weight edit", func(t *testing.T) {
		var b domain.BodyMetrics

		b, err := b.WithField(domain.BodyFieldHeight, fptr(170))
		assert.Nil(t, err)
		assert.Equal(t, 0.0, b.BMI, "weight still missing")

		b, err = b.WithField(domain.BodyFieldWeight, fptr(70))
		assert.Nil(t, err)
		assert.Equal(t, 24.2, b.BMI)
		assert.NotEmpty(t, b.Timestamp)
	})

	t.Run("Success: Composition fields adjust and clear", func(t *testing.T) {
		var b domain.BodyMetrics
		b, _ = b.WithField(domain.BodyFieldHeight, fptr(170))
		b, _ = b.WithField(domain.BodyFieldWeight, fptr(70))
		b, _ = b.WithField(domain.BodyFieldBodyFat, fptr(10))
		b, _ = b.WithField(domain.BodyFieldMuscleMass, fptr(45))

		assert.Equal(t, 17.9, b.BMI)

		b, err := b.WithField(domain.BodyFieldMuscleMass, nil)
		assert.Nil(t, err)
		assert.Nil(t, b.MuscleMass)
		assert.Equal(t, 24.2, b.BMI, "adjustment dropped with the field")
	})

	t.Run("Success: Original value untouched by update", func(t *testing.T) {
		var orig domain.BodyMetrics
		orig, _ = orig.WithField(domain.BodyFieldHeight, fptr(170))

		updated, _ := orig.WithField(domain.BodyFieldHeight, fptr(180))

		assert.Equal(t, 170.0, orig.Height)
		assert.Equal(t, 180.0, updated.Height)
	})

	t.Run("Error: Unknown field", func(t *testing.T) {
		var b domain.BodyMetrics
		_, err := b.WithField(domain.BodyField("bmi"), fptr(25))
		assert.Equal(t, domain.ErrUnknownBodyField, err)
	})
}
