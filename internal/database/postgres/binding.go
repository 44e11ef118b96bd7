package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedlink/feedlink/internal/domain"
	"github.com/feedlink/feedlink/internal/linkflow"
)

// Verify interface compliance
var _ linkflow.BindingRepository = (*BindingRepository)(nil)

// BindingRepository implements linkflow.BindingRepository
type BindingRepository struct {
	db *pgxpool.Pool
}

// NewBindingRepository creates a new binding repository
func NewBindingRepository(db *pgxpool.Pool) *BindingRepository {
	return &BindingRepository{db: db}
}

// Upsert writes the binding keyed by (chat, provider). The single INSERT ON
// CONFLICT statement keeps the overwrite atomic: concurrent upserts resolve
// last-writer-wins with no observable mix of old and new fields.
func (r *BindingRepository) Upsert(ctx context.Context, binding domain.Binding) error {
	query := `
		INSERT INTO account_bindings (chat_id, provider, external_account_id, access_token, linked_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (chat_id, provider) DO UPDATE
		SET external_account_id = EXCLUDED.external_account_id,
		    access_token = EXCLUDED.access_token,
		    linked_at = EXCLUDED.linked_at
	`
	_, err := r.db.Exec(ctx, query,
		binding.ChatID,
		binding.Provider,
		binding.ExternalAccountID,
		binding.AccessToken,
		binding.LinkedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert binding: %w", err)
	}
	return nil
}

// FindByChat returns the binding for one chat/provider pair
func (r *BindingRepository) FindByChat(ctx context.Context, chatID int64, provider string) (*domain.Binding, error) {
	query := `
		SELECT chat_id, provider, external_account_id, access_token, linked_at
		FROM account_bindings
		WHERE chat_id = $1 AND provider = $2
	`
	var binding domain.Binding
	err := r.db.QueryRow(ctx, query, chatID, provider).Scan(
		&binding.ChatID,
		&binding.Provider,
		&binding.ExternalAccountID,
		&binding.AccessToken,
		&binding.LinkedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBindingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find binding: %w", err)
	}
	return &binding, nil
}

// ListByChat returns every binding for a chat
func (r *BindingRepository) ListByChat(ctx context.Context, chatID int64) ([]domain.Binding, error) {
	query := `
		SELECT chat_id, provider, external_account_id, access_token, linked_at
		FROM account_bindings
		WHERE chat_id = $1
		ORDER BY provider
	`
	rows, err := r.db.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bindings: %w", err)
	}
	defer rows.Close()

	var bindings []domain.Binding
	for rows.Next() {
		var binding domain.Binding
		if err := rows.Scan(
			&binding.ChatID,
			&binding.Provider,
			&binding.ExternalAccountID,
			&binding.AccessToken,
			&binding.LinkedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan binding: %w", err)
		}
		bindings = append(bindings, binding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bindings: %w", err)
	}
	return bindings, nil
}
