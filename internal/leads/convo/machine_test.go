package convo

import (
	"context"
	"strings"
	"testing"

	"leadqualify_backend/internal/leads/domain"
)

const testLink = "https://calendly.com/test-team/15min"

func newTestMachine() *Machine {
	return NewMachine(DefaultScript(), NewLexiconClassifier(), testLink)
}

func TestInterviewTurnRecordsAnswerAndAsksNext(t *testing.T) {
	m := newTestMachine()
	lead := domain.NewLead("15551234567")

	turn, err := m.ComputeNextStep(context.Background(), lead, nil, "Phoenix")
	if err != nil {
		t.Fatalf("ComputeNextStep: %v", err)
	}

	if turn.Branch != BranchInterview {
		t.Fatalf("branch = %q, want %q", turn.Branch, BranchInterview)
	}
	if len(turn.Updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(turn.Updates))
	}

	next := turn.Updates[0]
	if next.Fields.Location != "Phoenix" {
		t.Errorf("location = %q, want Phoenix", next.Fields.Location)
	}
	if next.CurrentQuestionIndex != 1 {
		t.Errorf("index = %d, want 1", next.CurrentQuestionIndex)
	}
	if turn.Reply != m.Script()[1].Prompt {
		t.Errorf("reply = %q, want the home_type prompt", turn.Reply)
	}
}

func TestFinalInterviewTurnCompletesAndOffersMeeting(t *testing.T) {
	m := newTestMachine()

	lead := domain.NewLead("15551234567")
	lead.CurrentQuestionIndex = 6
	lead.Fields = domain.Fields{
		Location:    "Phoenix",
		HomeType:    "house",
		Bedrooms:    "3",
		Budget:      "450k",
		Timeline:    "asap",
		Preapproval: "yes",
	}

	turn, err := m.ComputeNextStep(context.Background(), lead, nil, "not sure")
	if err != nil {
		t.Fatalf("ComputeNextStep: %v", err)
	}

	// Two persist points: completion with score first, then the offer flag.
	if len(turn.Updates) != 2 {
		t.Fatalf("updates = %d, want 2", len(turn.Updates))
	}

	completed := turn.Updates[0]
	if completed.Fields.Motivation != domain.Unknown {
		t.Errorf("motivation = %q, want the unknown sentinel", completed.Fields.Motivation)
	}
	if completed.CurrentQuestionIndex != 7 {
		t.Errorf("index = %d, want 7", completed.CurrentQuestionIndex)
	}
	if !completed.QualificationComplete {
		t.Error("qualification_complete = false, want true")
	}
	if completed.LeadScore != domain.TierHot {
		t.Errorf("lead_score = %q, want hot", completed.LeadScore)
	}
	if completed.AskedForMeeting {
		t.Error("first persist point must not carry asked_for_meeting")
	}

	offered := turn.Updates[1]
	if !offered.AskedForMeeting {
		t.Error("second persist point must carry asked_for_meeting")
	}

	if !strings.Contains(turn.Reply, string(domain.TierHot)) {
		t.Errorf("reply %q must mention the tier", turn.Reply)
	}
	if !strings.Contains(turn.Reply, testLink) {
		t.Errorf("reply %q must include the scheduling link", turn.Reply)
	}
}

func TestSchedulingTurnAffirmative(t *testing.T) {
	m := newTestMachine()

	lead := domain.NewLead("15551234567")
	lead.CurrentQuestionIndex = 7
	lead.QualificationComplete = true
	lead.AskedForMeeting = true

	turn, err := m.ComputeNextStep(context.Background(), lead, nil, "yeah let's do it")
	if err != nil {
		t.Fatalf("ComputeNextStep: %v", err)
	}

	if turn.Branch != BranchScheduling {
		t.Fatalf("branch = %q, want %q", turn.Branch, BranchScheduling)
	}

	next := turn.Final()
	if !next.MeetingScheduled {
		t.Error("meeting_scheduled = false, want true")
	}
	if next.WantsMeeting == nil || !*next.WantsMeeting {
		t.Error("wants_meeting must be true")
	}
	if next.MeetingNotes == nil || *next.MeetingNotes != "yeah let's do it" {
		t.Errorf("meeting_notes must keep the raw reply, got %v", next.MeetingNotes)
	}
	if turn.Reply != confirmReply {
		t.Errorf("reply = %q, want the confirmation text", turn.Reply)
	}
}

func TestSchedulingTurnNegative(t *testing.T) {
	m := newTestMachine()

	lead := domain.NewLead("15551234567")
	lead.CurrentQuestionIndex = 7
	lead.QualificationComplete = true
	lead.AskedForMeeting = true

	turn, err := m.ComputeNextStep(context.Background(), lead, nil, "no thanks, not now")
	if err != nil {
		t.Fatalf("ComputeNextStep: %v", err)
	}

	next := turn.Final()
	if !next.MeetingScheduled {
		t.Error("a negative answer still closes the scheduling question")
	}
	if next.WantsMeeting == nil || *next.WantsMeeting {
		t.Error("wants_meeting must be false")
	}
	if next.MeetingNotes != nil {
		t.Errorf("meeting_notes must stay empty on decline, got %q", *next.MeetingNotes)
	}
	if turn.Reply != declineReply {
		t.Errorf("reply = %q, want the decline text", turn.Reply)
	}
}

func TestTerminalStateIsIdempotent(t *testing.T) {
	m := newTestMachine()

	wants := true
	lead := domain.NewLead("15551234567")
	lead.CurrentQuestionIndex = 7
	lead.QualificationComplete = true
	lead.AskedForMeeting = true
	lead.MeetingScheduled = true
	lead.WantsMeeting = &wants

	for _, inbound := range []string{"hello?", "actually one more thing", "yes"} {
		turn, err := m.ComputeNextStep(context.Background(), lead, nil, inbound)
		if err != nil {
			t.Fatalf("ComputeNextStep(%q): %v", inbound, err)
		}
		if turn.Branch != BranchTerminal {
			t.Errorf("branch = %q, want %q", turn.Branch, BranchTerminal)
		}
		if turn.Mutated() {
			t.Errorf("terminal turn for %q must not mutate state", inbound)
		}
		if turn.Reply != terminalReply {
			t.Errorf("reply = %q, want the fixed acknowledgement", turn.Reply)
		}
	}
}

func TestFallbackBranchLeavesStateUntouched(t *testing.T) {
	m := newTestMachine()

	// Index at script length with no meeting offer is not produced by any
	// transition; the machine must still answer something harmless.
	lead := domain.NewLead("15551234567")
	lead.CurrentQuestionIndex = 7

	turn, err := m.ComputeNextStep(context.Background(), lead, nil, "hi")
	if err != nil {
		t.Fatalf("ComputeNextStep: %v", err)
	}
	if turn.Branch != BranchFallback {
		t.Fatalf("branch = %q, want %q", turn.Branch, BranchFallback)
	}
	if turn.Mutated() {
		t.Error("fallback must not mutate state")
	}
	if turn.Reply == "" {
		t.Error("fallback must still reply")
	}
}

func TestIndexNeverExceedsScriptLength(t *testing.T) {
	m := newTestMachine()
	scriptLen := m.Script().Len()

	lead := domain.NewLead("15551234567")
	answers := []string{"Phoenix", "house", "3", "450k", "asap", "yes", "relocating", "extra", "more"}

	for n, answer := range answers {
		turn, err := m.ComputeNextStep(context.Background(), lead, nil, answer)
		if err != nil {
			t.Fatalf("turn %d: %v", n, err)
		}
		if turn.Mutated() {
			lead = turn.Final()
		}

		wantIndex := n + 1
		if wantIndex > scriptLen {
			wantIndex = scriptLen
		}
		if lead.CurrentQuestionIndex != wantIndex {
			t.Fatalf("after %d turns index = %d, want %d", n+1, lead.CurrentQuestionIndex, wantIndex)
		}
		if lead.QualificationComplete != (lead.CurrentQuestionIndex == scriptLen) {
			t.Fatalf("after %d turns qualification_complete = %v at index %d", n+1, lead.QualificationComplete, lead.CurrentQuestionIndex)
		}
	}
}
