package repository

import (
	"context"

	"leadqualify_backend/internal/leads/domain"
)

// AppendMessage logs one side of a conversation exchange. The log is
// append-only; created_at is assigned by the store and defines order.
func (r *Repository) AppendMessage(ctx context.Context, phone string, sender domain.Sender, text string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO messages (lead_phone, sender, message)
		VALUES ($1, $2, $3)
	`, phone, string(sender), text)
	return err
}

// ListMessages returns the full history for a lead in creation order.
func (r *Repository) ListMessages(ctx context.Context, phone string) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_phone, sender, message, created_at
		FROM messages
		WHERE lead_phone = $1
		ORDER BY created_at ASC, id ASC
	`, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]domain.Message, 0)
	for rows.Next() {
		var msg domain.Message
		var sender string
		if err := rows.Scan(&msg.ID, &msg.LeadPhone, &sender, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.Sender = domain.Sender(sender)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
