package convo

import (
	"os"
	"path/filepath"
	"testing"

	"leadqualify_backend/internal/leads/domain"
)

func writeScriptFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write script file: %v", err)
	}
	return path
}

func TestLoadScriptEmptyPathReturnsDefault(t *testing.T) {
	script, err := LoadScript("")
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if script.Len() != len(domain.FieldNames) {
		t.Errorf("len = %d, want %d", script.Len(), len(domain.FieldNames))
	}
}

func TestLoadScriptOverridesPrompts(t *testing.T) {
	path := writeScriptFile(t, `
- field: location
  prompt: "Where to?"
- field: home_type
  prompt: "What kind of place?"
- field: bedrooms
  prompt: "How many rooms?"
- field: budget
  prompt: "Spending how much?"
- field: timeline
  prompt: "When?"
- field: preapproval
  prompt: "Financing sorted?"
- field: motivation
  prompt: "Why move?"
`)

	script, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if script[0].Prompt != "Where to?" {
		t.Errorf("prompt = %q, want the override", script[0].Prompt)
	}
	for i, entry := range script {
		if entry.Field != domain.FieldNames[i] {
			t.Errorf("entry %d field = %q, want %q", i, entry.Field, domain.FieldNames[i])
		}
	}
}

func TestLoadScriptRejectsBadFiles(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"wrong count", "- field: location\n  prompt: \"Where?\"\n"},
		{"reordered fields", `
- field: home_type
  prompt: "a"
- field: location
  prompt: "b"
- field: bedrooms
  prompt: "c"
- field: budget
  prompt: "d"
- field: timeline
  prompt: "e"
- field: preapproval
  prompt: "f"
- field: motivation
  prompt: "g"
`},
		{"empty prompt", `
- field: location
  prompt: ""
- field: home_type
  prompt: "b"
- field: bedrooms
  prompt: "c"
- field: budget
  prompt: "d"
- field: timeline
  prompt: "e"
- field: preapproval
  prompt: "f"
- field: motivation
  prompt: "g"
`},
		{"not yaml", "{{{"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScriptFile(t, tc.content)
			if _, err := LoadScript(path); err == nil {
				t.Error("LoadScript accepted an invalid file")
			}
		})
	}
}

func TestLoadScriptMissingFile(t *testing.T) {
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadScript accepted a missing file")
	}
}
