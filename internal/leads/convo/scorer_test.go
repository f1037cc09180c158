package convo

import (
	"testing"

	"leadqualify_backend/internal/leads/domain"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name   string
		fields domain.Fields
		want   domain.Tier
	}{
		{
			name: "urgent strong budget high fill is hot",
			fields: domain.Fields{
				Location: "Phoenix", HomeType: "house", Bedrooms: "3",
				Budget: "450k", Timeline: "asap", Preapproval: "yes", Motivation: "relocating",
			},
			want: domain.TierHot,
		},
		{
			name: "weak budget caps at warm despite urgency and fill",
			fields: domain.Fields{
				Location: "Dallas", HomeType: "condo", Bedrooms: "2",
				Budget: domain.Unknown, Timeline: "asap", Preapproval: "cash", Motivation: "job",
			},
			want: domain.TierWarm,
		},
		{
			name: "no urgency caps at warm despite full fill",
			fields: domain.Fields{
				Location: "Austin", HomeType: "house", Bedrooms: "4",
				Budget: "600k", Timeline: "next year", Preapproval: "yes", Motivation: "upsizing",
			},
			want: domain.TierWarm,
		},
		{
			name: "hedged budget caps at warm",
			fields: domain.Fields{
				Location: "Tucson", HomeType: "house", Bedrooms: "3",
				Budget: "not sure yet", Timeline: "immediately", Preapproval: "yes", Motivation: "family",
			},
			want: domain.TierWarm,
		},
		{
			name: "four filled fields is warm",
			fields: domain.Fields{
				Location: "Mesa", HomeType: "condo", Bedrooms: "2", Budget: "300k",
			},
			want: domain.TierWarm,
		},
		{
			name: "three filled fields is cold",
			fields: domain.Fields{
				Location: "Mesa", HomeType: "condo", Bedrooms: "2",
			},
			want: domain.TierCold,
		},
		{
			name:   "empty fields is cold",
			fields: domain.Fields{},
			want:   domain.TierCold,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.fields); got != tc.want {
				t.Errorf("Score() = %q, want %q", got, tc.want)
			}
			// Pure function: a second call on identical input must agree.
			if got := Score(tc.fields); got != tc.want {
				t.Errorf("Score() second call = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFilledCountExcludesUnknownSentinel(t *testing.T) {
	fields := domain.Fields{
		Location: "Dallas", HomeType: "condo", Bedrooms: "2",
		Budget: domain.Unknown, Timeline: "asap", Preapproval: "cash", Motivation: "job",
	}
	if got := fields.FilledCount(); got != 6 {
		t.Errorf("FilledCount() = %d, want 6", got)
	}
}

func TestFilledCountMonotonic(t *testing.T) {
	var fields domain.Fields
	prev := fields.FilledCount()

	for _, name := range domain.FieldNames {
		fields.Set(name, "answered")
		count := fields.FilledCount()
		if count < prev {
			t.Fatalf("FilledCount decreased from %d to %d after setting %s", prev, count, name)
		}
		prev = count
	}
	if prev != len(domain.FieldNames) {
		t.Errorf("FilledCount() = %d with every field set, want %d", prev, len(domain.FieldNames))
	}
}
