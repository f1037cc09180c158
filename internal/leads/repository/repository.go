// Package repository provides data access for leads and their message
// history. All queries key leads by the normalized digits-only phone.
package repository

import (
	"context"
	"errors"

	"leadqualify_backend/internal/leads/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrLeadExists is returned by Create when the phone is already on record.
var ErrLeadExists = errors.New("lead already exists")

const leadColumns = `
	phone, current_question_index, qualification_complete, asked_for_meeting,
	meeting_scheduled, wants_meeting, meeting_notes, lead_score,
	location, home_type, bedrooms, budget, timeline, preapproval, motivation,
	notes, created_at, updated_at`

// Repository provides data access for leads and messages.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Upsert writes the full lead snapshot, merging over any existing record for
// the phone. The state machine persists complete snapshots, so every column
// is written on conflict.
func (r *Repository) Upsert(ctx context.Context, lead domain.Lead) error {
	var score *string
	if lead.LeadScore != "" {
		s := string(lead.LeadScore)
		score = &s
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO leads (
			phone, current_question_index, qualification_complete, asked_for_meeting,
			meeting_scheduled, wants_meeting, meeting_notes, lead_score,
			location, home_type, bedrooms, budget, timeline, preapproval, motivation
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (phone) DO UPDATE SET
			current_question_index = EXCLUDED.current_question_index,
			qualification_complete = EXCLUDED.qualification_complete,
			asked_for_meeting      = EXCLUDED.asked_for_meeting,
			meeting_scheduled      = EXCLUDED.meeting_scheduled,
			wants_meeting          = EXCLUDED.wants_meeting,
			meeting_notes          = EXCLUDED.meeting_notes,
			lead_score             = EXCLUDED.lead_score,
			location               = EXCLUDED.location,
			home_type              = EXCLUDED.home_type,
			bedrooms               = EXCLUDED.bedrooms,
			budget                 = EXCLUDED.budget,
			timeline               = EXCLUDED.timeline,
			preapproval            = EXCLUDED.preapproval,
			motivation             = EXCLUDED.motivation,
			updated_at             = now()
	`,
		lead.Phone, lead.CurrentQuestionIndex, lead.QualificationComplete, lead.AskedForMeeting,
		lead.MeetingScheduled, lead.WantsMeeting, lead.MeetingNotes, score,
		nullIfEmpty(lead.Fields.Location), nullIfEmpty(lead.Fields.HomeType), nullIfEmpty(lead.Fields.Bedrooms),
		nullIfEmpty(lead.Fields.Budget), nullIfEmpty(lead.Fields.Timeline), nullIfEmpty(lead.Fields.Preapproval),
		nullIfEmpty(lead.Fields.Motivation),
	)
	return err
}

// Create inserts the default state for a phone not yet on record. Returns
// ErrLeadExists when the phone is already present.
func (r *Repository) Create(ctx context.Context, phone string) (domain.Lead, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO leads (phone) VALUES ($1)
		ON CONFLICT (phone) DO NOTHING
	`, phone)
	if err != nil {
		return domain.Lead{}, err
	}
	if tag.RowsAffected() == 0 {
		return domain.Lead{}, ErrLeadExists
	}

	lead, _, err := r.Get(ctx, phone)
	return lead, err
}

// Get loads the lead for the phone. A missing record yields the default
// state and found=false; callers on the webhook path treat that as a brand
// new lead rather than an error.
func (r *Repository) Get(ctx context.Context, phone string) (domain.Lead, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE phone = $1`, phone)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewLead(phone), false, nil
		}
		return domain.Lead{}, false, err
	}
	return lead, true, nil
}

// List returns all leads, newest first.
func (r *Repository) List(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// UpdateNotes sets the agent-authored notes. Notes live outside the
// qualification data and never touch the state machine's fields.
func (r *Repository) UpdateNotes(ctx context.Context, phone string, notes string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET notes = $2, updated_at = now() WHERE phone = $1
	`, phone, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (domain.Lead, error) {
	var lead domain.Lead
	var score *string
	var location, homeType, bedrooms, budget, timeline, preapproval, motivation *string

	err := row.Scan(
		&lead.Phone, &lead.CurrentQuestionIndex, &lead.QualificationComplete, &lead.AskedForMeeting,
		&lead.MeetingScheduled, &lead.WantsMeeting, &lead.MeetingNotes, &score,
		&location, &homeType, &bedrooms, &budget, &timeline, &preapproval, &motivation,
		&lead.Notes, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}

	if score != nil {
		lead.LeadScore = domain.Tier(*score)
	}
	lead.Fields = domain.Fields{
		Location:    deref(location),
		HomeType:    deref(homeType),
		Bedrooms:    deref(bedrooms),
		Budget:      deref(budget),
		Timeline:    deref(timeline),
		Preapproval: deref(preapproval),
		Motivation:  deref(motivation),
	}
	return lead, nil
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
