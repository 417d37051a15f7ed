package repository

import (
	"context"
	"database/sql"
	"fmt"

	"inmobiliaria_api/internal/domain/model"

	"github.com/rs/zerolog/log"
)

type ContactRepository interface {
	Create(ctx context.Context, message *model.ContactMessage) error
}

type pgContactRepository struct {
	db *sql.DB
}

func NewPgContactRepository(db *sql.DB) ContactRepository {
	return &pgContactRepository{db: db}
}

func (r *pgContactRepository) Create(ctx context.Context, m *model.ContactMessage) error {
	query := `INSERT INTO contact_messages (id, name, email, phone, message, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Email, nullIfEmpty(m.Phone), m.Message, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgContactRepository.Create: %w", err)
	}
	return nil
}

type logContactRepository struct{}

// NewLogContactRepository records inquiries to the structured log only.
// Used with the flat-file driver, which has no inquiry table.
func NewLogContactRepository() ContactRepository {
	return logContactRepository{}
}

func (logContactRepository) Create(_ context.Context, m *model.ContactMessage) error {
	log.Info().
		Str("name", m.Name).
		Str("email", m.Email).
		Str("phone", m.Phone).
		Msg("contact inquiry received")
	return nil
}
