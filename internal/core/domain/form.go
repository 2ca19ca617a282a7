package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeFrame is the entry granularity. It determines how many discrete
// samples each vital series collects.
type TimeFrame string

const (
	TimeFrameDay   TimeFrame = "day"
	TimeFrameWeek  TimeFrame = "week"
	TimeFrameMonth TimeFrame = "month"
	TimeFrameYear  TimeFrame = "year"
)

// SampleCount returns the number of samples a series holds for the frame:
// one reading for a day, daily readings for a week/month, monthly for a year.
func (tf TimeFrame) SampleCount() int {
	switch tf {
	case TimeFrameDay:
		return 1
	case TimeFrameWeek:
		return 7
	case TimeFrameMonth:
		return 30
	case TimeFrameYear:
		return 12
	default:
		return 0
	}
}

func ParseTimeFrame(s string) (TimeFrame, error) {
	tf := TimeFrame(s)
	if tf.SampleCount() == 0 {
		return "", ErrUnknownTimeFrame
	}
	return tf, nil
}

// VitalField names one of the per-sample vital series.
type VitalField string

const (
	FieldSystolic         VitalField = "systolic"
	FieldDiastolic        VitalField = "diastolic"
	FieldOxygenSaturation VitalField = "oxygenSaturation"
	FieldPulseRate        VitalField = "pulseRate"
	FieldTemperature      VitalField = "temperature"
	FieldSleepDuration    VitalField = "sleepDuration"
)

// Series is an immutable fixed-length sample array. With returns a fresh
// copy so older FormState values are never disturbed.
type Series []float64

func NewSeries(n int) Series {
	return make(Series, n)
}

func (s Series) With(index int, value float64) (Series, error) {
	if index < 0 || index >= len(s) {
		return s, ErrSampleOutOfRange
	}
	next := make(Series, len(s))
	copy(next, s)
	next[index] = value
	return next, nil
}

// First is the sample the flat submission payload carries.
func (s Series) First() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

// Resize returns a series of the new length, keeping as many leading
// samples as fit.
func (s Series) Resize(n int) Series {
	next := make(Series, n)
	copy(next, s)
	return next
}

// VitalSeries groups the per-vital sample series of one form.
type VitalSeries struct {
	Systolic         Series `json:"systolic"`
	Diastolic        Series `json:"diastolic"`
	OxygenSaturation Series `json:"oxygenSaturation"`
	PulseRate        Series `json:"pulseRate"`
	Temperature      Series `json:"temperature"`
	SleepDuration    Series `json:"sleepDuration"`
}

// FormState is the working record behind one open entry form. It is an
// immutable value: every edit goes through a WithXxx reducer that returns a
// new state with the derived fields (BMI, sleep quality) recomputed, so a
// state handed to a caller can never change underneath it.
type FormState struct {
	ID           string      `json:"id"`
	TimeFrame    TimeFrame   `json:"timeFrame"`
	Vitals       VitalSeries `json:"vitals"`
	Sleep        SleepStages `json:"sleep"`
	SleepQuality int         `json:"sleepQuality"`
	Body         BodyMetrics `json:"bodyMetrics"`
	BMIClass     BMIClass    `json:"bmiClass"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// NewFormState opens an empty form for the given time frame.
func NewFormState(tf TimeFrame) (FormState, error) {
	n := tf.SampleCount()
	if n == 0 {
		return FormState{}, ErrUnknownTimeFrame
	}

	now := time.Now().UTC()

	return FormState{
		ID:        uuid.New().String(),
		TimeFrame: tf,
		Vitals: VitalSeries{
			Systolic:         NewSeries(n),
			Diastolic:        NewSeries(n),
			OxygenSaturation: NewSeries(n),
			PulseRate:        NewSeries(n),
			Temperature:      NewSeries(n),
			SleepDuration:    NewSeries(n),
		},
		BMIClass:  ClassifyBMI(0, nil, nil),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (f FormState) touch() FormState {
	f.UpdatedAt = time.Now().UTC()
	return f
}

// WithTimeFrame switches the entry granularity, resizing every series while
// keeping the leading samples already entered.
func (f FormState) WithTimeFrame(tf TimeFrame) (FormState, error) {
	n := tf.SampleCount()
	if n == 0 {
		return f, ErrUnknownTimeFrame
	}

	f.TimeFrame = tf
	f.Vitals = VitalSeries{
		Systolic:         f.Vitals.Systolic.Resize(n),
		Diastolic:        f.Vitals.Diastolic.Resize(n),
		OxygenSaturation: f.Vitals.OxygenSaturation.Resize(n),
		PulseRate:        f.Vitals.PulseRate.Resize(n),
		Temperature:      f.Vitals.Temperature.Resize(n),
		SleepDuration:    f.Vitals.SleepDuration.Resize(n),
	}
	return f.touch(), nil
}

// WithVital replaces one sample of one vital series.
func (f FormState) WithVital(field VitalField, index int, value float64) (FormState, error) {
	var (
		next Series
		err  error
	)

	switch field {
	case FieldSystolic:
		next, err = f.Vitals.Systolic.With(index, value)
		f.Vitals.Systolic = next
	case FieldDiastolic:
		next, err = f.Vitals.Diastolic.With(index, value)
		f.Vitals.Diastolic = next
	case FieldOxygenSaturation:
		next, err = f.Vitals.OxygenSaturation.With(index, value)
		f.Vitals.OxygenSaturation = next
	case FieldPulseRate:
		next, err = f.Vitals.PulseRate.With(index, value)
		f.Vitals.PulseRate = next
	case FieldTemperature:
		next, err = f.Vitals.Temperature.With(index, value)
		f.Vitals.Temperature = next
	case FieldSleepDuration:
		next, err = f.Vitals.SleepDuration.With(index, value)
		f.Vitals.SleepDuration = next
	default:
		return f, ErrUnknownVitalField
	}

	if err != nil {
		return f, err
	}
	return f.touch(), nil
}

// WithBodyField updates one body metrics field and recomputes BMI and its
// classification. A nil value clears an optional field.
func (f FormState) WithBodyField(field BodyField, value *float64) (FormState, error) {
	body, err := f.Body.WithField(field, value)
	if err != nil {
		return f, err
	}

	f.Body = body
	f.BMIClass = body.Classify()
	return f.touch(), nil
}

// WithSleepStage updates one stage's hours and recomputes the quality score.
func (f FormState) WithSleepStage(stage SleepStage, hours float64) (FormState, error) {
	sleep, err := f.Sleep.WithStage(stage, hours)
	if err != nil {
		return f, err
	}

	f.Sleep = sleep
	f.SleepQuality = sleep.QualityScore()
	return f.touch(), nil
}

// BloodPressure is the nested pair the upstream API expects.
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// SubmissionPayload is the flat record posted to /api/health-data. Multi-
// sample series contribute only their first sample.
type SubmissionPayload struct {
	BloodPressure    BloodPressure `json:"bloodPressure"`
	OxygenSaturation float64       `json:"oxygenSaturation"`
	PulseRate        float64       `json:"pulseRate"`
	Temperature      float64       `json:"temperature"`
	SleepDuration    float64       `json:"sleepDuration"`
	SleepQuality     int           `json:"sleepQuality"`
	BodyMetrics      BodyMetrics   `json:"bodyMetrics"`
	Timestamp        string        `json:"timestamp"`
}

// Payload assembles the submission record from the current state.
func (f FormState) Payload(now time.Time) SubmissionPayload {
	body := f.Body
	if body.Timestamp == "" {
		body.Timestamp = now.UTC().Format(time.RFC3339)
	}

	return SubmissionPayload{
		BloodPressure: BloodPressure{
			Systolic:  f.Vitals.Systolic.First(),
			Diastolic: f.Vitals.Diastolic.First(),
		},
		OxygenSaturation: f.Vitals.OxygenSaturation.First(),
		PulseRate:        f.Vitals.PulseRate.First(),
		Temperature:      f.Vitals.Temperature.First(),
		SleepDuration:    f.Vitals.SleepDuration.First(),
		SleepQuality:     f.SleepQuality,
		BodyMetrics:      body,
		Timestamp:        now.UTC().Format(time.RFC3339),
	}
}
