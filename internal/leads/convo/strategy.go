package convo

import (
	"context"

	"leadqualify_backend/internal/leads/domain"
)

// Branch names identify which transition produced a Turn; they feed logging
// and tests only.
const (
	BranchTerminal   = "terminal"
	BranchInterview  = "interview"
	BranchScheduling = "scheduling"
	BranchFallback   = "fallback"
)

// Turn is the outcome of one inbound message: zero or more lead snapshots to
// persist in order, and the reply to deliver. The state machine computes
// turns; the webhook service applies them. Two snapshots appear on the final
// interview turn, matching the two distinct persist points of that
// transition (completion+score first, then the meeting offer flag).
type Turn struct {
	Branch  string
	Updates []domain.Lead
	Reply   string
}

// Mutated reports whether the turn changes any persisted state.
func (t Turn) Mutated() bool { return len(t.Updates) > 0 }

// Final returns the last snapshot of the turn, or the zero Lead when the
// turn carries no mutation.
func (t Turn) Final() domain.Lead {
	if len(t.Updates) == 0 {
		return domain.Lead{}
	}
	return t.Updates[len(t.Updates)-1]
}

// Strategy decides, from the persisted lead state (and, for strategies that
// need it, the full message history) plus the newest inbound text, what to
// persist and what to reply. Exactly one strategy runs per deployment; the
// scripted machine and the extraction engine must never be mixed on one
// lead record because they disagree on when a field counts as answered.
type Strategy interface {
	ComputeNextStep(ctx context.Context, lead domain.Lead, history []domain.Message, inbound string) (Turn, error)
}
