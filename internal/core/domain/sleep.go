package domain

import "math"

// SleepStage names one of the four time-of-night categories.
type SleepStage string

const (
	StageAwake SleepStage = "awake"
	StageLight SleepStage = "lightSleep"
	StageDeep  SleepStage = "deepSleep"
	StageREM   SleepStage = "remSleep"
)

// SleepStages holds per-stage durations in hours. The quality score depends
// only on the relative proportions, never on the absolute total.
type SleepStages struct {
	Awake      float64 `json:"awake"`
	LightSleep float64 `json:"lightSleep"`
	DeepSleep  float64 `json:"deepSleep"`
	REMSleep   float64 `json:"remSleep"`
}

// StagePercentages is the stage breakdown as percentages of total time.
type StagePercentages struct {
	Awake      float64 `json:"awake"`
	LightSleep float64 `json:"lightSleep"`
	DeepSleep  float64 `json:"deepSleep"`
	REMSleep   float64 `json:"remSleep"`
}

// Midpoint targets for the canonical scorer. Width is the half-width of the
// tolerance band: at |pct - mid| == width the stage contributes nothing.
var stageTargets = []struct {
	mid, width float64
}{
	{7.5, 7.5},  // awake
	{50, 10},    // light
	{20, 10},    // deep
	{22.5, 7.5}, // rem
}

// Ideal ranges for the legacy range-based scorer.
var stageRanges = []struct {
	min, max float64
}{
	{5, 10},  // awake
	{45, 55}, // light
	{15, 25}, // deep
	{20, 25}, // rem
}

func (s SleepStages) Total() float64 {
	return s.Awake + s.LightSleep + s.DeepSleep + s.REMSleep
}

// Percentages converts stage hours into percentages of total sleep time.
// A zero total yields all zeros rather than a division fault.
func (s SleepStages) Percentages() StagePercentages {
	total := s.Total()
	if total == 0 {
		return StagePercentages{}
	}
	return StagePercentages{
		Awake:      s.Awake / total * 100,
		LightSleep: s.LightSleep / total * 100,
		DeepSleep:  s.DeepSleep / total * 100,
		REMSleep:   s.REMSleep / total * 100,
	}
}

func (p StagePercentages) ordered() [4]float64 {
	return [4]float64{p.Awake, p.LightSleep, p.DeepSleep, p.REMSleep}
}

// QualityScore is the canonical sleep-quality law: each stage scores
// linearly by distance from its ideal midpoint, clamped at zero, and the
// four scores sum to a 0-10 index. A perfectly typical night
// (7.5/50/20/22.5) scores 10.
func (s SleepStages) QualityScore() int {
	if s.Total() == 0 {
		return 0
	}

	pcts := s.Percentages().ordered()

	var sum float64
	for i, pct := range pcts {
		t := stageTargets[i]
		score := 1 - math.Abs(pct-t.mid)/t.width
		sum += math.Max(0, score)
	}

	return int(math.Round(sum * 2.5))
}

// RangeQualityScore is the range-based law the original per-stage hours
// widget used: a stage inside its ideal range scores 1, outside it decays
// proportionally to the distance past the boundary. Kept alongside
// QualityScore for comparison; note the per-stage penalty is not clamped,
// so extreme inputs can push a stage score below zero before averaging.
func (s SleepStages) RangeQualityScore() int {
	if s.Total() == 0 {
		return 0
	}

	pcts := s.Percentages().ordered()

	var sum float64
	for i, pct := range pcts {
		r := stageRanges[i]
		switch {
		case pct < r.min:
			sum += 1 - (r.min-pct)/r.min
		case pct > r.max:
			sum += 1 - (pct-r.max)/(100-r.max)
		default:
			sum += 1
		}
	}

	return int(math.Round(sum / 4 * 10))
}

// WithStage returns a copy with one stage's hours replaced. Negative hours
// are rejected.
func (s SleepStages) WithStage(stage SleepStage, hours float64) (SleepStages, error) {
	if hours < 0 {
		return s, ErrNegativeStageHours
	}

	next := s
	switch stage {
	case StageAwake:
		next.Awake = hours
	case StageLight:
		next.LightSleep = hours
	case StageDeep:
		next.DeepSleep = hours
	case StageREM:
		next.REMSleep = hours
	default:
		return s, ErrUnknownSleepStage
	}
	return next, nil
}
