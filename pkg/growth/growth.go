package growth

import "math"

const (
	// MaxHeight is the tallest a plant can grow under ideal conditions (cm).
	MaxHeight = 30.0
	// MinHeight is the height of a plant with no water, fertilizer, or light (cm).
	MinHeight = 5.0

	// MaxWater is the water volume (ml/day) at which the water score saturates.
	MaxWater = 500.0
	// MaxFertilizer is the fertilizer amount (g/day) at which its score saturates.
	MaxFertilizer = 5.0
	// MaxLight is the light exposure (hours/day) at which its score saturates.
	MaxLight = 10.0

	// deficiencyThreshold is the score below which a factor can be reported as limiting.
	deficiencyThreshold = 0.5

	waterWeight      = 0.4
	fertilizerWeight = 0.3
	lightWeight      = 0.3

	waterExponent      = 1.2
	fertilizerExponent = 1.1
	lightExponent      = 1.3
)

// Inputs holds the environmental conditions of a single simulation.
type Inputs struct {
	Water      float64 `json:"water" yaml:"water"`
	Fertilizer float64 `json:"fertilizer" yaml:"fertilizer"`
	Light      float64 `json:"light" yaml:"light"`
}

// Scores are the inputs normalized to [0, 1].
type Scores struct {
	Water      float64 `json:"water" yaml:"water"`
	Fertilizer float64 `json:"fertilizer" yaml:"fertilizer"`
	Light      float64 `json:"light" yaml:"light"`
}

// Result is the predicted phenotype for a set of inputs.
type Result struct {
	Inputs      Inputs  `json:"inputs" yaml:"inputs"`
	Scores      Scores  `json:"scores" yaml:"scores"`
	GrowthIndex float64 `json:"growth_index" yaml:"growth_index"`
	Height      float64 `json:"height" yaml:"height"`
	Label       Label   `json:"label" yaml:"label"`
	Description string  `json:"description" yaml:"description"`
}

// Predict maps the environmental inputs to a plant height and phenotype label.
// Out of range values are clamped, so every input produces a result.
func Predict(in Inputs) *Result {
	s := Normalize(in)

	idx := GrowthIndex(s)
	label := Classify(s)

	return &Result{
		Inputs:      in,
		Scores:      s,
		GrowthIndex: idx,
		Height:      round2(MinHeight + idx*(MaxHeight-MinHeight)),
		Label:       label,
		Description: label.Describe(LangEnglish),
	}
}

// Normalize scales each input against its saturation point.
func Normalize(in Inputs) Scores {
	return Scores{
		Water:      score(in.Water, MaxWater),
		Fertilizer: score(in.Fertilizer, MaxFertilizer),
		Light:      score(in.Light, MaxLight),
	}
}

// GrowthIndex combines the scores into a single value in [0, 1].
func GrowthIndex(s Scores) float64 {
	return waterWeight*math.Pow(s.Water, waterExponent) +
		fertilizerWeight*math.Pow(s.Fertilizer, fertilizerExponent) +
		lightWeight*math.Pow(s.Light, lightExponent)
}

// Classify returns the limiting factor, if any. A factor is limiting only when
// it is below the threshold and strictly lower than both others; ties resolve
// to Optimal.
func Classify(s Scores) Label {
	switch {
	case isLimiting(s.Water, s.Fertilizer, s.Light):
		return WaterDeficient
	case isLimiting(s.Fertilizer, s.Water, s.Light):
		return NutrientDeficient
	case isLimiting(s.Light, s.Water, s.Fertilizer):
		return LightDeficient
	default:
		return Optimal
	}
}

func isLimiting(v, a, b float64) bool {
	return v < deficiencyThreshold && v < a && v < b
}

func score(v, limit float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return math.Min(v/limit, 1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
