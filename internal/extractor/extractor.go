// Package extractor is the LLM-backed conversation strategy. Instead of
// walking a fixed script index, it re-reads the whole conversation each
// turn, extracts whatever qualification fields the lead has answered so
// far, and asks for the first field still missing.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"leadqualify_backend/internal/leads/convo"
	"leadqualify_backend/internal/leads/domain"
	"leadqualify_backend/platform/ai/gemini"
	"leadqualify_backend/platform/logger"
)

// Extractor implements convo.Strategy on top of an LLM completion client.
// The scheduling and terminal branches are delegated to the scripted
// machine so both strategies close out a conversation identically.
type Extractor struct {
	completer      gemini.Completer
	script         convo.Script
	scripted       convo.Strategy
	schedulingLink string
	log            *logger.Logger
}

// New creates the extraction strategy. The script supplies the question
// prompts and the field order; scripted handles the post-interview branches.
func New(completer gemini.Completer, script convo.Script, scripted convo.Strategy, schedulingLink string, log *logger.Logger) *Extractor {
	return &Extractor{
		completer:      completer,
		script:         script,
		scripted:       scripted,
		schedulingLink: schedulingLink,
		log:            log,
	}
}

// ComputeNextStep extracts fields from the full history and advances the
// interview. Post-interview messages (scheduling answer, after-booking
// chatter) are handed to the scripted machine unchanged.
func (e *Extractor) ComputeNextStep(ctx context.Context, lead domain.Lead, history []domain.Message, inbound string) (convo.Turn, error) {
	if lead.MeetingScheduled || lead.AskedForMeeting {
		return e.scripted.ComputeNextStep(ctx, lead, history, inbound)
	}

	extracted := e.extract(ctx, history, inbound)

	next := lead
	for _, name := range domain.FieldNames {
		// Extraction can only add or refine answers, never erase one. A
		// degraded LLM response must not regress the interview.
		if value := strings.TrimSpace(extracted.Get(name)); value != "" {
			next.Fields.Set(name, value)
		}
	}

	// The question index tracks how many fields are answered so the
	// completion invariant (index equals script length exactly when the
	// interview is done) holds for both strategies. It never moves backwards.
	if answered := e.answeredCount(next.Fields); answered > next.CurrentQuestionIndex {
		next.CurrentQuestionIndex = answered
	}

	if missing := e.firstMissing(next.Fields); missing >= 0 {
		return convo.Turn{
			Branch:  convo.BranchInterview,
			Updates: []domain.Lead{next},
			Reply:   e.script[missing].Prompt,
		}, nil
	}

	next.CurrentQuestionIndex = e.script.Len()
	next.QualificationComplete = true
	next.LeadScore = convo.Score(next.Fields)

	offered := next
	offered.AskedForMeeting = true

	return convo.Turn{
		Branch:  convo.BranchInterview,
		Updates: []domain.Lead{next, offered},
		Reply:   e.summaryOffer(next),
	}, nil
}

// extract runs the completion and parses its JSON. Any failure returns the
// zero Fields value, which the caller treats as "no new information".
func (e *Extractor) extract(ctx context.Context, history []domain.Message, inbound string) domain.Fields {
	raw, err := e.completer.Complete(ctx, systemPrompt, transcript(history, inbound))
	if err != nil {
		e.log.Error("field extraction failed", "error", err)
		return domain.Fields{}
	}

	payload := jsonBody(raw)
	var out map[string]string
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		e.log.Warn("field extraction returned malformed JSON", "error", err)
		return domain.Fields{}
	}

	var fields domain.Fields
	for _, name := range domain.FieldNames {
		fields.Set(name, strings.TrimSpace(out[name]))
	}
	return fields
}

// firstMissing returns the script index of the first unanswered field, or
// -1 when every field is answered. The Unknown sentinel counts as answered
// so a declined question is never re-asked.
func (e *Extractor) firstMissing(fields domain.Fields) int {
	for i, entry := range e.script {
		if fields.Get(entry.Field) == "" {
			return i
		}
	}
	return -1
}

// answeredCount counts answered fields, Unknown included.
func (e *Extractor) answeredCount(fields domain.Fields) int {
	count := 0
	for _, entry := range e.script {
		if fields.Get(entry.Field) != "" {
			count++
		}
	}
	return count
}

// summaryOffer closes the interview with a recap of what was understood
// plus the meeting offer.
func (e *Extractor) summaryOffer(lead domain.Lead) string {
	var parts []string
	for _, name := range domain.FieldNames {
		if value := lead.Fields.Get(name); value != "" && value != domain.Unknown {
			parts = append(parts, fmt.Sprintf("%s: %s", strings.ReplaceAll(name, "_", " "), value))
		}
	}

	summary := "Here's what I have so far"
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}

	return fmt.Sprintf(
		"%s. That's everything I need, thank you! You're looking like a %s lead on our end. "+
			"Want to grab 15 minutes with one of our agents? Book directly here: %s — or just reply YES and we'll set it up.",
		summary, lead.LeadScore, e.schedulingLink,
	)
}

// jsonBody strips markdown fences and surrounding prose, keeping the
// outermost JSON object.
func jsonBody(raw string) string {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return raw
	}
	return raw[start : end+1]
}

var _ convo.Strategy = (*Extractor)(nil)
