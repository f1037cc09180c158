package convo

import (
	"context"
	"fmt"
	"strings"

	"leadqualify_backend/internal/leads/domain"
)

// Machine is the scripted conversation state machine. It holds only plain
// data (the script, the classifier, the scheduling link) and no collaborator
// handles, so a turn is exactly reproducible from the lead snapshot and the
// inbound text.
type Machine struct {
	script         Script
	classifier     IntentClassifier
	schedulingLink string
}

// NewMachine creates the scripted strategy.
func NewMachine(script Script, classifier IntentClassifier, schedulingLink string) *Machine {
	return &Machine{
		script:         script,
		classifier:     classifier,
		schedulingLink: schedulingLink,
	}
}

// Script returns the interview script the machine runs.
func (m *Machine) Script() Script { return m.script }

// ComputeNextStep evaluates the transitions in strict priority order:
// terminal, interview, scheduling response, fallback. The terminal check
// must come first so a late message after booking is never misread as a
// qualification answer, and the interview check must precede the scheduling
// check because asked_for_meeting is already true during the final interview
// turn's second persist point.
func (m *Machine) ComputeNextStep(_ context.Context, lead domain.Lead, _ []domain.Message, inbound string) (Turn, error) {
	switch {
	case lead.MeetingScheduled:
		return Turn{Branch: BranchTerminal, Reply: terminalReply}, nil
	case lead.CurrentQuestionIndex < m.script.Len():
		return m.interviewTurn(lead, inbound), nil
	case lead.AskedForMeeting && !lead.MeetingScheduled:
		return m.schedulingTurn(lead, inbound), nil
	default:
		return Turn{Branch: BranchFallback, Reply: fallbackReply}, nil
	}
}

func (m *Machine) interviewTurn(lead domain.Lead, inbound string) Turn {
	answer := strings.TrimSpace(inbound)
	if m.classifier.IsUnknown(answer) {
		answer = domain.Unknown
	}

	next := lead
	next.Fields.Set(m.script[next.CurrentQuestionIndex].Field, answer)
	next.CurrentQuestionIndex++

	if next.CurrentQuestionIndex < m.script.Len() {
		return Turn{
			Branch:  BranchInterview,
			Updates: []domain.Lead{next},
			Reply:   m.script[next.CurrentQuestionIndex].Prompt,
		}
	}

	next.QualificationComplete = true
	next.LeadScore = Score(next.Fields)

	offered := next
	offered.AskedForMeeting = true

	return Turn{
		Branch:  BranchInterview,
		Updates: []domain.Lead{next, offered},
		Reply:   m.offerReply(next.LeadScore),
	}
}

func (m *Machine) schedulingTurn(lead domain.Lead, inbound string) Turn {
	wants := m.classifier.IsAffirmative(inbound)

	next := lead
	next.MeetingScheduled = true
	next.WantsMeeting = &wants
	if wants {
		raw := inbound
		next.MeetingNotes = &raw
	}

	reply := declineReply
	if wants {
		reply = confirmReply
	}

	return Turn{
		Branch:  BranchScheduling,
		Updates: []domain.Lead{next},
		Reply:   reply,
	}
}

func (m *Machine) offerReply(tier domain.Tier) string {
	return fmt.Sprintf(
		"That's everything I need, thank you! Based on your answers you're looking like a %s lead on our end. "+
			"Want to grab 15 minutes with one of our agents? Book directly here: %s — or just reply YES and we'll set it up.",
		tier, m.schedulingLink,
	)
}

const (
	terminalReply = "You're all set! Our team has your details and will follow up on your call. Feel free to message if anything changes."
	confirmReply  = "Perfect, consider it booked! One of our agents will confirm a time with you shortly. Talk soon!"
	declineReply  = "No problem at all. We'll keep your details on file and reach out when the timing is better. Message us anytime."
	fallbackReply = "Thanks for reaching out! One of our agents will be in touch soon."
)

var _ Strategy = (*Machine)(nil)
