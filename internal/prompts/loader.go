// Package prompts holds the LLM prompt templates shipped with the binary.
// Each embedded JSON file maps template keys to template text.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var templateFS embed.FS

type templateFile map[string]string

var (
	parsedMu sync.Mutex
	parsed   = map[string]templateFile{}
)

// Get returns the template stored under key in the named embedded file,
// for example Get("enhancement.json", "enhance-resume").
func Get(filename, key string) (string, error) {
	file, err := open(filename)
	if err != nil {
		return "", err
	}
	template, ok := file[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for templates compiled into the binary; a miss panics.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Key}} placeholders with values from data in a single
// pass. Substituted values are never rescanned, so a value containing
// placeholder syntax is inserted literally.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// open parses an embedded file on first use and keeps the result.
func open(filename string) (templateFile, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()

	if file, ok := parsed[filename]; ok {
		return file, nil
	}

	raw, err := fs.ReadFile(templateFS, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var file templateFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	parsed[filename] = file
	return file, nil
}
