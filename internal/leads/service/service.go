// Package service implements the administrative lead operations. These are
// thin pass-throughs to the store and messenger with validation; the
// conversation state machine is never involved here.
package service

import (
	"context"
	"errors"

	"leadqualify_backend/internal/leads/domain"
	"leadqualify_backend/internal/leads/repository"
	"leadqualify_backend/internal/leads/transport"
	"leadqualify_backend/platform/apperr"
	"leadqualify_backend/platform/logger"
	"leadqualify_backend/platform/phone"

	"github.com/jackc/pgx/v5"
)

// Messenger delivers outbound WhatsApp messages. Satisfied by
// whatsapp.Client.
type Messenger interface {
	SendMessage(ctx context.Context, phoneNumber string, message string) error
}

// Service handles administrative lead operations.
type Service struct {
	repo      *repository.Repository
	messenger Messenger
	log       *logger.Logger
}

// New creates the admin lead service.
func New(repo *repository.Repository, messenger Messenger, log *logger.Logger) *Service {
	return &Service{repo: repo, messenger: messenger, log: log}
}

// Create registers a lead with default state for a phone not yet on record.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	key := phone.Normalize(req.Phone)
	if key == "" {
		return transport.LeadResponse{}, apperr.Validation("phone must contain digits")
	}

	lead, err := s.repo.Create(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrLeadExists) {
			return transport.LeadResponse{}, apperr.Conflict("lead already exists").WithDetails(key)
		}
		s.log.DatabaseError("create lead", err)
		return transport.LeadResponse{}, apperr.Internal("failed to create lead")
	}

	return transport.ToLeadResponse(lead), nil
}

// List returns all leads, newest first.
func (s *Service) List(ctx context.Context) ([]transport.LeadResponse, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		s.log.DatabaseError("list leads", err)
		return nil, apperr.Internal("failed to list leads")
	}

	result := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		result[i] = transport.ToLeadResponse(lead)
	}
	return result, nil
}

// Get returns one lead by phone.
func (s *Service) Get(ctx context.Context, rawPhone string) (transport.LeadResponse, error) {
	key := phone.Normalize(rawPhone)

	lead, found, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.DatabaseError("get lead", err)
		return transport.LeadResponse{}, apperr.Internal("failed to load lead")
	}
	if !found {
		return transport.LeadResponse{}, apperr.NotFound("lead not found")
	}

	return transport.ToLeadResponse(lead), nil
}

// Messages returns the conversation history for a lead in creation order.
func (s *Service) Messages(ctx context.Context, rawPhone string) ([]transport.MessageResponse, error) {
	key := phone.Normalize(rawPhone)

	messages, err := s.repo.ListMessages(ctx, key)
	if err != nil {
		s.log.DatabaseError("list messages", err)
		return nil, apperr.Internal("failed to load messages")
	}

	result := make([]transport.MessageResponse, len(messages))
	for i, msg := range messages {
		result[i] = transport.ToMessageResponse(msg)
	}
	return result, nil
}

// PatchNotes sets the agent notes on an existing lead.
func (s *Service) PatchNotes(ctx context.Context, rawPhone string, req transport.PatchNotesRequest) error {
	key := phone.Normalize(rawPhone)

	if err := s.repo.UpdateNotes(ctx, key, req.Notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("lead not found")
		}
		s.log.DatabaseError("patch notes", err)
		return apperr.Internal("failed to update notes")
	}
	return nil
}

// AgentReply sends a human-authored message to the lead and logs it with
// sender=agent. Delivery failure is surfaced to the admin caller (unlike the
// webhook path, a human pressing send wants to know it failed), but the
// message log entry is written regardless so the transcript stays honest
// about the attempt.
func (s *Service) AgentReply(ctx context.Context, rawPhone string, req transport.AgentReplyRequest) error {
	key := phone.Normalize(rawPhone)

	_, found, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.DatabaseError("get lead for reply", err)
		return apperr.Internal("failed to load lead")
	}
	if !found {
		return apperr.NotFound("lead not found")
	}

	if err := s.repo.AppendMessage(ctx, key, domain.SenderAgent, req.Message); err != nil {
		s.log.DatabaseError("log agent reply", err)
	}

	if err := s.messenger.SendMessage(ctx, key, req.Message); err != nil {
		s.log.MessengerError(key, err)
		return apperr.Internal("failed to deliver message")
	}
	return nil
}
