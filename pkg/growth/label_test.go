package growth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	list := Labels()
	require.Len(t, list, 4)
	assert.Equal(t, WaterDeficient, list[0])
	assert.Equal(t, Optimal, list[3])

	// callers get a copy
	list[0] = "x"
	assert.Equal(t, WaterDeficient, Labels()[0])
}

func TestParseLabel(t *testing.T) {
	l, err := ParseLabel("LightDeficient")
	require.NoError(t, err)
	assert.Equal(t, LightDeficient, l)

	l, err = ParseLabel(" optimal ")
	require.NoError(t, err)
	assert.Equal(t, Optimal, l)

	_, err = ParseLabel("../etc/passwd")
	assert.ErrorIs(t, err, ErrUnknownLabel)

	_, err = ParseLabel("")
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestDescribe(t *testing.T) {
	for _, l := range Labels() {
		for _, lang := range Languages() {
			assert.NotEmpty(t, l.Describe(lang), "%s/%s", l, lang)
		}
		assert.Equal(t, l.Describe(LangEnglish), l.Describe("fr"))
	}
	assert.NotEqual(t, Optimal.Describe(LangEnglish), Optimal.Describe(LangVietnamese))
}

func TestIsLanguage(t *testing.T) {
	assert.True(t, IsLanguage("en"))
	assert.True(t, IsLanguage("vi"))
	assert.False(t, IsLanguage("EN"))
	assert.False(t, IsLanguage(""))
}
