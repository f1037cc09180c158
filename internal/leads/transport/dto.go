// Package transport defines the request/response DTOs for the leads admin
// surface.
package transport

import (
	"time"

	"leadqualify_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// CreateLeadRequest registers a phone manually, ahead of any inbound message.
type CreateLeadRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

// PatchNotesRequest sets the agent-authored notes on a lead.
type PatchNotesRequest struct {
	Notes string `json:"notes" validate:"required,max=4000"`
}

// AgentReplyRequest sends a human reply to a lead over WhatsApp.
type AgentReplyRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// LeadResponse is the wire shape of a lead.
type LeadResponse struct {
	Phone                 string        `json:"phone"`
	CurrentQuestionIndex  int           `json:"currentQuestionIndex"`
	QualificationComplete bool          `json:"qualificationComplete"`
	AskedForMeeting       bool          `json:"askedForMeeting"`
	MeetingScheduled      bool          `json:"meetingScheduled"`
	WantsMeeting          *bool         `json:"wantsMeeting"`
	MeetingNotes          *string       `json:"meetingNotes"`
	LeadScore             string        `json:"leadScore,omitempty"`
	Fields                domain.Fields `json:"fields"`
	Notes                 *string       `json:"notes"`
	CreatedAt             time.Time     `json:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt"`
}

// MessageResponse is the wire shape of one conversation entry.
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToLeadResponse maps a domain lead onto the wire shape.
func ToLeadResponse(lead domain.Lead) LeadResponse {
	return LeadResponse{
		Phone:                 lead.Phone,
		CurrentQuestionIndex:  lead.CurrentQuestionIndex,
		QualificationComplete: lead.QualificationComplete,
		AskedForMeeting:       lead.AskedForMeeting,
		MeetingScheduled:      lead.MeetingScheduled,
		WantsMeeting:          lead.WantsMeeting,
		MeetingNotes:          lead.MeetingNotes,
		LeadScore:             string(lead.LeadScore),
		Fields:                lead.Fields,
		Notes:                 lead.Notes,
		CreatedAt:             lead.CreatedAt,
		UpdatedAt:             lead.UpdatedAt,
	}
}

// ToMessageResponse maps a domain message onto the wire shape.
func ToMessageResponse(msg domain.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		Sender:    string(msg.Sender),
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}
}
