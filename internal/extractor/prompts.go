package extractor

import (
	"fmt"
	"strings"

	"leadqualify_backend/internal/leads/domain"
)

const systemPrompt = `You are a data extraction engine for a real-estate lead qualification service.
You read a WhatsApp conversation between a prospective home buyer ("Lead") and an assistant ("Assistant") and extract the buyer's answers.

Return ONLY a JSON object, no markdown, no commentary, with exactly these keys:
  "location"    - area or city the buyer wants to buy in
  "home_type"   - type of home (house, condo, townhouse, ...)
  "bedrooms"    - number of bedrooms wanted
  "budget"      - price range or budget
  "timeline"    - when they want to buy
  "preapproval" - whether they are pre-approved for a mortgage
  "motivation"  - why they are buying

Rules:
- Use the buyer's own wording, condensed to a short phrase.
- If the buyer was asked about a field and declined or did not know, use the string "unknown".
- If the conversation contains no information about a field, use the empty string "".
- Never invent information that is not in the conversation.`

// transcript renders the message history plus the newest inbound line in
// the Lead/Assistant format the system prompt describes.
func transcript(history []domain.Message, inbound string) string {
	var b strings.Builder
	for _, msg := range history {
		switch msg.Sender {
		case domain.SenderLead:
			fmt.Fprintf(&b, "Lead: %s\n", msg.Message)
		case domain.SenderAI:
			fmt.Fprintf(&b, "Assistant: %s\n", msg.Message)
		}
	}
	if !strings.HasSuffix(b.String(), "Lead: "+inbound+"\n") {
		fmt.Fprintf(&b, "Lead: %s\n", inbound)
	}
	return b.String()
}
