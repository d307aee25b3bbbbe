package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("enhancement.json", "enhance-resume")
	require.NoError(t, err)
	assert.Contains(t, prompt, "You are an expert resume optimizer.")
	assert.Contains(t, prompt, "{{.Resume}}")
	assert.Contains(t, prompt, "{{.JobDescription}}")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get("enhancement.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	assert.NotPanics(t, func() {
		prompt := MustGet("enhancement.json", "enhance-resume")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	result := Format(template, data)
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	assert.Equal(t, template, Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"

	assert.Equal(t, template, Format(template, map[string]string{}))
}

func TestFormat_ValuesAreNotReexpanded(t *testing.T) {
	template := "A={{.A}} B={{.B}}"
	data := map[string]string{
		"A": "{{.B}}",
		"B": "{{.A}}",
	}

	// Run repeatedly: map iteration order must not influence the result.
	for i := 0; i < 20; i++ {
		assert.Equal(t, "A={{.B}} B={{.A}}", Format(template, data))
	}
}

func TestFormat_RepeatedPlaceholder(t *testing.T) {
	assert.Equal(t, "x x", Format("{{.V}} {{.V}}", map[string]string{"V": "x"}))
}

func TestGet_ParsesFileOnce(t *testing.T) {
	first, err := Get("enhancement.json", "enhance-resume")
	require.NoError(t, err)
	assert.Contains(t, parsed, "enhancement.json")

	second, err := Get("enhancement.json", "enhance-resume")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.NotContains(t, parsed, "nonexistent.json")
}
