package growth

import (
	"errors"
	"fmt"
	"strings"
)

// Label is the phenotype classification of a growth outcome, named after the
// limiting environmental factor.
type Label string

const (
	WaterDeficient    Label = "WaterDeficient"
	NutrientDeficient Label = "NutrientDeficient"
	LightDeficient    Label = "LightDeficient"
	Optimal           Label = "Optimal"

	LangEnglish    = "en"
	LangVietnamese = "vi"
)

var (
	ErrUnknownLabel = errors.New("unknown phenotype label")

	labels = []Label{
		WaterDeficient,
		NutrientDeficient,
		LightDeficient,
		Optimal,
	}

	descriptions = map[string]map[Label]string{
		LangEnglish: {
			WaterDeficient:    "Wilted and stunted from lack of water. Leaves droop and growth is slow.",
			NutrientDeficient: "Underdeveloped with pale leaves from lack of nutrients.",
			LightDeficient:    "Thin and sparse, stretching tall in search of light.",
			Optimal:           "Optimal growth under balanced environmental conditions.",
		},
		LangVietnamese: {
			WaterDeficient:    "Cây héo, còi cọc do thiếu nước. Lá rũ và tốc độ sinh trưởng chậm.",
			NutrientDeficient: "Cây kém phát triển, lá nhạt màu do thiếu dinh dưỡng.",
			LightDeficient:    "Cây mảnh, ít lá, do ánh sáng yếu. Hiện tượng vươn dài để tìm sáng.",
			Optimal:           "Cây phát triển tối ưu với điều kiện môi trường cân bằng.",
		},
	}
)

// Labels returns all phenotype labels in classification order.
func Labels() []Label {
	list := make([]Label, len(labels))
	copy(list, labels)
	return list
}

// Languages returns the supported description languages.
func Languages() []string {
	return []string{LangEnglish, LangVietnamese}
}

// IsLanguage reports whether descriptions exist for lang.
func IsLanguage(lang string) bool {
	_, ok := descriptions[lang]
	return ok
}

// ParseLabel returns the label matching name, ignoring case.
func ParseLabel(name string) (Label, error) {
	n := strings.TrimSpace(name)
	for _, l := range labels {
		if strings.EqualFold(string(l), n) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLabel, name)
}

func (l Label) String() string {
	return string(l)
}

// Describe returns the static description of the label in lang, falling back
// to English.
func (l Label) Describe(lang string) string {
	d, ok := descriptions[lang]
	if !ok {
		d = descriptions[LangEnglish]
	}
	return d[l]
}
