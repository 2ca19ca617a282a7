package domain

import (
	"math"
	"time"
)

// BMI category names. The athletic branches only apply when both
// composition percentages are known.
const (
	CategoryInvalid     = "Invalid BMI"
	CategoryAthletic    = "Athletic Build"
	CategoryMuscular    = "Muscular"
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal weight"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

// BodyMetrics is a value object: it is never mutated in place, updates go
// through FormState reducers which recompute BMI from the raw fields.
type BodyMetrics struct {
	Height     float64  `json:"height"`
	Weight     float64  `json:"weight"`
	BMI        float64  `json:"bmi"`
	BodyFat    *float64 `json:"bodyFat,omitempty"`
	MuscleMass *float64 `json:"muscleMass,omitempty"`
	BodyWater  *float64 `json:"bodyWater,omitempty"`
	BoneMass   *float64 `json:"boneMass,omitempty"`
	Timestamp  string   `json:"timestamp"`
}

// BMIClass pairs the category label with a short human-readable description.
type BMIClass struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ComputeBMI expects height in centimeters and weight in kilograms.
// Non-positive height or weight yields the 0 sentinel instead of an error,
// so a half-filled form never blows up mid-edit.
//
// When both composition percentages are present the basic BMI is divided by
// a composition factor 1 + (muscle - fat), rewarding high muscle / low fat
// with a lower adjusted value.
func ComputeBMI(heightCm, weightKg float64, bodyFatPct, muscleMassPct *float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}

	h := heightCm / 100.0 // to meters
	bmi := round1(weightKg / (h * h))

	if bodyFatPct != nil && muscleMassPct != nil {
		factor := 1 + (*muscleMassPct/100 - *bodyFatPct/100)
		if factor > 0 {
			bmi = round1(bmi / factor)
		}
	}

	return bmi
}

// ClassifyBMI maps a BMI value to its category. Branch order matters: the
// athletic gate (muscle > 35%, fat < 25%) is checked before the standard
// bands, and all band comparisons are strict so 18.5/25/30 land in the
// upper band. Pure function, safe to call repeatedly.
func ClassifyBMI(bmi float64, bodyFatPct, muscleMassPct *float64) BMIClass {
	if bmi <= 0 {
		return BMIClass{Category: CategoryInvalid, Description: "Height and weight are required"}
	}

	if bodyFatPct != nil && muscleMassPct != nil && *muscleMassPct > 35 && *bodyFatPct < 25 {
		if bmi < 25 {
			return BMIClass{Category: CategoryAthletic, Description: "High muscle mass with low body fat"}
		}
		if bmi < 30 {
			return BMIClass{Category: CategoryMuscular, Description: "Elevated BMI driven by muscle mass"}
		}
	}

	switch {
	case bmi < 18.5:
		return BMIClass{Category: CategoryUnderweight, Description: "Below the healthy weight range"}
	case bmi < 25:
		return BMIClass{Category: CategoryNormal, Description: "Within the healthy weight range"}
	case bmi < 30:
		return BMIClass{Category: CategoryOverweight, Description: "Above the healthy weight range"}
	default:
		return BMIClass{Category: CategoryObese, Description: "Well above the healthy weight range"}
	}
}

// WithField returns a copy with the given field updated and BMI recomputed.
// BMI itself is not settable: it is always derived.
func (b BodyMetrics) WithField(field BodyField, value *float64) (BodyMetrics, error) {
	next := b

	switch field {
	case BodyFieldHeight:
		if value == nil {
			next.Height = 0
		} else {
			next.Height = *value
		}
	case BodyFieldWeight:
		if value == nil {
			next.Weight = 0
		} else {
			next.Weight = *value
		}
	case BodyFieldBodyFat:
		next.BodyFat = copyOptional(value)
	case BodyFieldMuscleMass:
		next.MuscleMass = copyOptional(value)
	case BodyFieldBodyWater:
		next.BodyWater = copyOptional(value)
	case BodyFieldBoneMass:
		next.BoneMass = copyOptional(value)
	default:
		return b, ErrUnknownBodyField
	}

	next.BMI = ComputeBMI(next.Height, next.Weight, next.BodyFat, next.MuscleMass)
	next.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return next, nil
}

// Classify returns the category for the metrics' current BMI.
func (b BodyMetrics) Classify() BMIClass {
	return ClassifyBMI(b.BMI, b.BodyFat, b.MuscleMass)
}

func copyOptional(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// BodyField names an editable BodyMetrics field.
type BodyField string

const (
	BodyFieldHeight     BodyField = "height"
	BodyFieldWeight     BodyField = "weight"
	BodyFieldBodyFat    BodyField = "bodyFat"
	BodyFieldMuscleMass BodyField = "muscleMass"
	BodyFieldBodyWater  BodyField = "bodyWater"
	BodyFieldBoneMass   BodyField = "boneMass"
)
