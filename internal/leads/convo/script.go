// Package convo implements the conversation engine: the interview script,
// the scripted state machine, the intent classifiers, and the lead scorer.
// Everything in this package is pure data-in/data-out; persistence and
// delivery belong to the webhook service.
package convo

import (
	"fmt"
	"os"

	"leadqualify_backend/internal/leads/domain"

	"gopkg.in/yaml.v3"
)

// Entry is one step of the interview: the field it fills and the prompt
// sent to ask for it.
type Entry struct {
	Field  string `yaml:"field"`
	Prompt string `yaml:"prompt"`
}

// Script is the fixed ordered list of interview steps.
type Script []Entry

// Len returns the number of script entries.
func (s Script) Len() int { return len(s) }

// DefaultScript returns the built-in seven-question interview.
func DefaultScript() Script {
	return Script{
		{Field: domain.FieldLocation, Prompt: "Great to meet you! First up: which area or city are you looking to buy in?"},
		{Field: domain.FieldHomeType, Prompt: "Got it. What type of home are you after — house, condo, townhome?"},
		{Field: domain.FieldBedrooms, Prompt: "How many bedrooms do you need?"},
		{Field: domain.FieldBudget, Prompt: "What budget range are you working with?"},
		{Field: domain.FieldTimeline, Prompt: "When are you hoping to move? (e.g. ASAP, 3 months, next year)"},
		{Field: domain.FieldPreapproval, Prompt: "Are you pre-approved for a mortgage, or paying cash?"},
		{Field: domain.FieldMotivation, Prompt: "Last one: what's prompting the move?"},
	}
}

// LoadScript reads a script override from a YAML file. An empty path returns
// the default script. The file must cover the same seven fields in the same
// order; only the prompt copy is configurable, because the field order is the
// contract between the state machine and stored question indexes.
func LoadScript(path string) (Script, error) {
	if path == "" {
		return DefaultScript(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script file: %w", err)
	}

	var loaded Script
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse script file: %w", err)
	}

	base := DefaultScript()
	if len(loaded) != len(base) {
		return nil, fmt.Errorf("script file must define exactly %d entries, got %d", len(base), len(loaded))
	}
	for i, entry := range loaded {
		if entry.Field != base[i].Field {
			return nil, fmt.Errorf("script entry %d must fill field %q, got %q", i, base[i].Field, entry.Field)
		}
		if entry.Prompt == "" {
			return nil, fmt.Errorf("script entry %d has an empty prompt", i)
		}
	}

	return loaded, nil
}
