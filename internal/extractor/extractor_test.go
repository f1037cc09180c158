package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leadqualify_backend/internal/leads/convo"
	"leadqualify_backend/internal/leads/domain"
	"leadqualify_backend/platform/logger"
)

type fakeCompleter struct {
	response string
	err      error
}

func (f fakeCompleter) Complete(context.Context, string, string) (string, error) {
	return f.response, f.err
}

func newTestExtractor(completer fakeCompleter) *Extractor {
	script := convo.DefaultScript()
	machine := convo.NewMachine(script, convo.NewLexiconClassifier(), "https://calendly.com/test/15min")
	return New(completer, script, machine, "https://calendly.com/test/15min", logger.New("test"))
}

func TestExtractorAsksFirstMissingField(t *testing.T) {
	e := newTestExtractor(fakeCompleter{response: `{"location":"Phoenix","home_type":"house","bedrooms":"","budget":"","timeline":"","preapproval":"","motivation":""}`})

	lead := domain.NewLead("12025550123")
	turn, err := e.ComputeNextStep(context.Background(), lead, nil, "a house in Phoenix")
	if err != nil {
		t.Fatalf("ComputeNextStep: %v", err)
	}

	next := turn.Final()
	if next.Fields.Location != "Phoenix" || next.Fields.HomeType != "house" {
		t.Errorf("extracted fields = %+v", next.Fields)
	}
	if next.CurrentQuestionIndex != 2 {
		t.Errorf("index = %d, want 2", next.CurrentQuestionIndex)
	}
	// bedrooms is the first unanswered field in script order.
	if turn.Reply != e.script[2].Prompt {
		t.Errorf("reply = %q, want the bedrooms prompt", turn.Reply)
	}
}

func TestExtractorMalformedOutputKeepsExistingAnswers(t *testing.T) {
	e := newTestExtractor(fakeCompleter{response: "I could not produce JSON, sorry!"})

	lead := domain.NewLead("12025550123")
	lead.CurrentQuestionIndex = 2
	lead.Fields.Location = "Phoenix"
	lead.Fields.HomeType = "house"

	turn, err := e.ComputeNextStep(context.Background(), lead, nil, "three bedrooms")
	if err != nil {
		t.Fatalf("ComputeNextStep: %v", err)
	}

	next := turn.Final()
	if next.Fields.Location != "Phoenix" || next.Fields.HomeType != "house" {
		t.Error("a malformed extraction must not erase existing answers")
	}
	if next.CurrentQuestionIndex != 2 {
		t.Errorf("index = %d, want 2 (no regression)", next.CurrentQuestionIndex)
	}
	if turn.Reply != e.script[2].Prompt {
		t.Errorf("reply = %q, want a re-ask of the bedrooms prompt", turn.Reply)
	}
}

func TestExtractorCompleterErrorKeepsExistingAnswers(t *testing.T) {
	e := newTestExtractor(fakeCompleter{err: errors.New("quota exceeded")})

	lead := domain.NewLead("12025550123")
	lead.CurrentQuestionIndex = 1
	lead.Fields.Location = "Phoenix"

	turn, err := e.ComputeNextStep(context.Background(), lead, nil, "a condo")
	if err != nil {
		t.Fatalf("ComputeNextStep: %v", err)
	}
	if turn.Final().Fields.Location != "Phoenix" {
		t.Error("a completion failure must not erase existing answers")
	}
}

func TestExtractorCompletesWhenAllFieldsAnswered(t *testing.T) {
	e := newTestExtractor(fakeCompleter{response: "```json\n" +
		`{"location":"Phoenix","home_type":"house","bedrooms":"3","budget":"450k","timeline":"asap","preapproval":"yes","motivation":"relocating"}` +
		"\n```"})

	lead := domain.NewLead("12025550123")
	lead.CurrentQuestionIndex = 5
	lead.Fields = domain.Fields{
		Location: "Phoenix", HomeType: "house", Bedrooms: "3",
		Budget: "450k", Timeline: "asap",
	}

	turn, err := e.ComputeNextStep(context.Background(), lead, nil, "pre-approved, relocating for work")
	if err != nil {
		t.Fatalf("ComputeNextStep: %v", err)
	}

	if len(turn.Updates) != 2 {
		t.Fatalf("updates = %d, want the two completion persist points", len(turn.Updates))
	}

	completed := turn.Updates[0]
	if !completed.QualificationComplete {
		t.Error("qualification_complete = false, want true")
	}
	if completed.CurrentQuestionIndex != e.script.Len() {
		t.Errorf("index = %d, want %d", completed.CurrentQuestionIndex, e.script.Len())
	}
	if completed.LeadScore != domain.TierHot {
		t.Errorf("lead_score = %q, want hot", completed.LeadScore)
	}
	if !turn.Updates[1].AskedForMeeting {
		t.Error("second persist point must carry asked_for_meeting")
	}

	if !strings.Contains(turn.Reply, "Phoenix") {
		t.Errorf("reply %q must recap the extracted answers", turn.Reply)
	}
	if !strings.Contains(turn.Reply, string(domain.TierHot)) {
		t.Errorf("reply %q must mention the tier", turn.Reply)
	}
}

func TestExtractorDelegatesPostInterviewBranches(t *testing.T) {
	// The completer must never run for scheduling or terminal turns; an
	// error response would fail the test if it did.
	e := newTestExtractor(fakeCompleter{err: errors.New("must not be called")})

	lead := domain.NewLead("12025550123")
	lead.CurrentQuestionIndex = e.script.Len()
	lead.QualificationComplete = true
	lead.AskedForMeeting = true

	turn, err := e.ComputeNextStep(context.Background(), lead, nil, "yes please")
	if err != nil {
		t.Fatalf("scheduling turn: %v", err)
	}
	if !turn.Final().MeetingScheduled {
		t.Error("meeting_scheduled = false, want true")
	}

	terminal := turn.Final()
	termTurn, err := e.ComputeNextStep(context.Background(), terminal, nil, "one more thing")
	if err != nil {
		t.Fatalf("terminal turn: %v", err)
	}
	if termTurn.Branch != convo.BranchTerminal {
		t.Errorf("branch = %q, want %q", termTurn.Branch, convo.BranchTerminal)
	}
	if termTurn.Mutated() {
		t.Error("terminal turn must not mutate state")
	}
}
