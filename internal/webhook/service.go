package webhook

import (
	"context"
	"strings"

	"leadqualify_backend/internal/events"
	"leadqualify_backend/internal/leads/convo"
	"leadqualify_backend/internal/leads/domain"
	"leadqualify_backend/platform/keylock"
	"leadqualify_backend/platform/logger"
	"leadqualify_backend/platform/phone"
)

// Store is the lead persistence surface the webhook service needs.
type Store interface {
	Get(ctx context.Context, phone string) (domain.Lead, bool, error)
	Upsert(ctx context.Context, lead domain.Lead) error
	AppendMessage(ctx context.Context, phone string, sender domain.Sender, text string) error
	ListMessages(ctx context.Context, phone string) ([]domain.Message, error)
}

// Messenger delivers outbound WhatsApp messages.
type Messenger interface {
	SendMessage(ctx context.Context, phoneNumber string, message string) error
}

// Service turns one inbound WhatsApp message into persisted state and a
// reply. It is the only writer of conversation state; the admin surface
// writes notes and agent replies but never touches the interview fields.
type Service struct {
	store     Store
	strategy  convo.Strategy
	messenger Messenger
	bus       events.Bus
	locks     *keylock.Map
	log       *logger.Logger
}

// NewService creates the webhook service.
func NewService(store Store, strategy convo.Strategy, messenger Messenger, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		strategy:  strategy,
		messenger: messenger,
		bus:       bus,
		locks:     keylock.New(),
		log:       log,
	}
}

// ProcessInbound runs the full conversation turn for one inbound message.
// Every failure is logged and swallowed: the gateway retries on non-2xx,
// and a retried message would be re-classified as a fresh answer, which is
// worse than a lost reply.
func (s *Service) ProcessInbound(ctx context.Context, from string, message string) {
	normalized := phone.Normalize(from)
	text := strings.TrimSpace(message)
	if normalized == "" || text == "" {
		s.log.Warn("webhook payload ignored", "from", from, "empty_text", text == "")
		return
	}

	log := &logger.Logger{Logger: s.log.With("lead_phone", normalized)}

	// Serialize turns per lead. Two rapid messages from the same number must
	// not both read the same question index.
	s.locks.Lock(normalized)
	defer s.locks.Unlock(normalized)

	lead, found, err := s.store.Get(ctx, normalized)
	if err != nil {
		log.DatabaseError("load lead", err)
		return
	}
	if !found {
		lead = domain.NewLead(normalized)
		// Best effort: a failed create is logged and the turn continues on
		// the in-memory default state.
		if err := s.store.Upsert(ctx, lead); err != nil {
			log.DatabaseError("create lead", err)
		} else {
			log.Info("new lead created from inbound message")
		}
	}

	if err := s.store.AppendMessage(ctx, normalized, domain.SenderLead, text); err != nil {
		log.DatabaseError("log inbound message", err)
	}

	history, err := s.store.ListMessages(ctx, normalized)
	if err != nil {
		log.DatabaseError("load message history", err)
		history = nil
	}

	turn, err := s.strategy.ComputeNextStep(ctx, lead, history, text)
	if err != nil {
		log.Error("conversation strategy failed", "error", err)
		return
	}

	// Persistence is best effort: a failed write is logged and the reply
	// still goes out. The worst case is re-answering one question on the
	// next message, which beats leaving the lead without a response.
	for _, update := range turn.Updates {
		if err := s.store.Upsert(ctx, update); err != nil {
			log.DatabaseError("persist lead state", err)
		}
	}

	replied := false
	if turn.Reply != "" {
		if err := s.store.AppendMessage(ctx, normalized, domain.SenderAI, turn.Reply); err != nil {
			log.DatabaseError("log outbound message", err)
		}
		if err := s.messenger.SendMessage(ctx, normalized, turn.Reply); err != nil {
			s.log.MessengerError(normalized, err)
		} else {
			replied = true
		}
	}

	s.publishTransitions(ctx, lead, turn)
	s.log.WebhookEvent(normalized, turn.Branch, replied)
}

// publishTransitions emits domain events for the state transitions the turn
// produced, comparing the pre-turn snapshot against the final one.
func (s *Service) publishTransitions(ctx context.Context, before domain.Lead, turn convo.Turn) {
	if !turn.Mutated() {
		return
	}
	after := turn.Final()

	if !before.QualificationComplete && after.QualificationComplete {
		s.bus.Publish(ctx, events.LeadQualified{
			BaseEvent: events.NewBaseEvent(),
			Phone:     after.Phone,
			Tier:      string(after.LeadScore),
		})
	}

	if !before.MeetingScheduled && after.MeetingScheduled && after.WantsMeeting != nil {
		s.bus.Publish(ctx, events.MeetingScheduled{
			BaseEvent:    events.NewBaseEvent(),
			Phone:        after.Phone,
			WantsMeeting: *after.WantsMeeting,
		})
	}
}
