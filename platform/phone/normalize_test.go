package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"already normalized", "12025550123", "12025550123"},
		{"e164", "+12025550123", "12025550123"},
		{"protocol prefix", "whatsapp:+12025550123", "12025550123"},
		{"formatted", "(202) 555-0123", "12025550123"},
		{"dots and dashes", "202.555-0123", "12025550123"},
		{"international", "+442071838750", "442071838750"},
		{"not a valid number keeps digits", "12345", "12345"},
		{"surrounding text keeps digits", "lead: 12025550123!", "12025550123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// The normalized form is the join key between a lead and its messages, so
// running an already-normalized key through again must be a no-op.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"whatsapp:+12025550123",
		"+12025550123",
		"(202) 555-0123",
		"12345",
		"5551234567",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize(Normalize(%q)): %q != %q", input, twice, once)
		}
	}
}
