package convo

import "testing"

func TestIsUnknown(t *testing.T) {
	c := NewLexiconClassifier()

	cases := []struct {
		text string
		want bool
	}{
		{"not sure", true},
		{"I'm Not Sure yet", true},
		{"don't know", true},
		{"dont know", true},
		{"idk", true},
		{"no idea honestly", true},
		{"dunno", true},
		{"Phoenix", false},
		{"450k", false},
		{"", false},
		{"   ", false},
	}

	for _, tc := range cases {
		if got := c.IsUnknown(tc.text); got != tc.want {
			t.Errorf("IsUnknown(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestIsAffirmative(t *testing.T) {
	c := NewLexiconClassifier()

	cases := []struct {
		text string
		want bool
	}{
		{"yes", true},
		{"Yeah let's do it", true},
		{"sounds good", true},
		{"ok", true},
		{"schedule me in", true},
		{"ready when you are", true},
		{"no", false},
		{"no thanks, not now", false},
		{"no thank you", false},
		{"not yet", false},
		{"nope", false},
		{"stop messaging me", false},
		// Negation wins even when an affirmative word appears in the reply.
		{"no, don't call me", false},
		{"maybe later", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := c.IsAffirmative(tc.text); got != tc.want {
			t.Errorf("IsAffirmative(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
