// Package notification alerts the human agent team about conversation
// milestones over WhatsApp.
package notification

import (
	"context"
	"fmt"

	"leadqualify_backend/internal/events"
	"leadqualify_backend/internal/leads/domain"
	"leadqualify_backend/platform/config"
	"leadqualify_backend/platform/logger"
)

// Messenger delivers outbound WhatsApp messages.
type Messenger interface {
	SendMessage(ctx context.Context, phoneNumber string, message string) error
}

// Notifier subscribes to domain events and pushes alerts to the configured
// agent phone. With no AGENT_ALERT_PHONE configured it subscribes nothing.
type Notifier struct {
	agentPhone string
	messenger  Messenger
	log        *logger.Logger
}

// New creates the notifier and registers its event subscriptions.
func New(cfg config.NotificationConfig, messenger Messenger, bus events.Bus, log *logger.Logger) *Notifier {
	n := &Notifier{
		agentPhone: cfg.GetAgentAlertPhone(),
		messenger:  messenger,
		log:        log,
	}

	if n.agentPhone == "" {
		log.Warn("AGENT_ALERT_PHONE not configured; agent alerts disabled")
		return n
	}

	bus.Subscribe(events.LeadQualified{}.EventName(), events.HandlerFunc(n.onLeadQualified))
	bus.Subscribe(events.MeetingScheduled{}.EventName(), events.HandlerFunc(n.onMeetingScheduled))
	return n
}

// onLeadQualified alerts the team about hot leads only. Warm and cold
// leads show up in the admin list without paging anyone.
func (n *Notifier) onLeadQualified(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadQualified)
	if !ok {
		return nil
	}
	if e.Tier != string(domain.TierHot) {
		return nil
	}

	text := fmt.Sprintf("Hot lead alert: %s just finished qualification. Review and follow up soon.", e.Phone)
	return n.send(ctx, text)
}

func (n *Notifier) onMeetingScheduled(ctx context.Context, event events.Event) error {
	e, ok := event.(events.MeetingScheduled)
	if !ok {
		return nil
	}
	if !e.WantsMeeting {
		return nil
	}

	text := fmt.Sprintf("Meeting request: %s wants a call with an agent. Confirm a time with them.", e.Phone)
	return n.send(ctx, text)
}

func (n *Notifier) send(ctx context.Context, text string) error {
	if err := n.messenger.SendMessage(ctx, n.agentPhone, text); err != nil {
		n.log.Error("agent alert delivery failed", "error", err)
		return err
	}
	return nil
}
