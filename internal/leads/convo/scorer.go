package convo

import (
	"strings"

	"leadqualify_backend/internal/leads/domain"
)

// urgencyKeywords mark a timeline answer as urgent.
var urgencyKeywords = []string{
	"asap",
	"soon",
	"immediately",
	"next month",
	"30 day",
	"2 week",
	"urgent",
}

// Score classifies a completed (or partially completed) field set into a
// tier. Pure function: same fields in, same tier out.
//
// The decision table, first match wins:
//
//	filled >= 5 AND urgent AND strong budget  -> hot
//	filled >= 4                               -> warm
//	otherwise                                 -> cold
//
// Urgency and budget strength are necessary for hot: a fully filled lead
// with no urgency signal scores warm, not hot.
func Score(fields domain.Fields) domain.Tier {
	filled := fields.FilledCount()
	urgent := isUrgent(fields.Timeline)
	strongBudget := hasStrongBudget(fields.Budget)

	switch {
	case filled >= 5 && urgent && strongBudget:
		return domain.TierHot
	case filled >= 4:
		return domain.TierWarm
	default:
		return domain.TierCold
	}
}

func isUrgent(timeline string) bool {
	lowered := strings.ToLower(timeline)
	for _, keyword := range urgencyKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// hasStrongBudget requires a concrete budget answer: present, not the
// Unknown sentinel, and not hedged with "not sure".
func hasStrongBudget(budget string) bool {
	if budget == "" {
		return false
	}
	lowered := strings.ToLower(budget)
	if strings.Contains(lowered, domain.Unknown) {
		return false
	}
	if strings.Contains(lowered, "not sure") {
		return false
	}
	return true
}
