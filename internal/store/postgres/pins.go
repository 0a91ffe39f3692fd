package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
)

func (s *Store) CreatePin(ctx context.Context, v *models.EmailVerification) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO email_verifications (id, email, phone, pin_code, expires_at, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.Email, v.Phone, v.PinCode, v.ExpiresAt, v.Verified, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert pin: %w", err)
	}
	return nil
}

// ConsumePin flips the newest live match in one statement, so a PIN cannot be
// consumed twice by concurrent requests.
func (s *Store) ConsumePin(ctx context.Context, id models.PinIdentity, pin string, now time.Time) (*models.EmailVerification, error) {
	column, value := "email", id.Email
	if id.Email == "" {
		column, value = "phone", id.Phone
	}

	query := `
		UPDATE email_verifications SET verified = true
		WHERE verified = false AND id = (
			SELECT id FROM email_verifications
			WHERE ` + column + ` = $1 AND pin_code = $2 AND verified = false AND expires_at > $3
			ORDER BY created_at DESC
			LIMIT 1
		)
		RETURNING id, email, phone, pin_code, expires_at, verified, created_at`

	var (
		v            models.EmailVerification
		email, phone sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, value, pin, now).Scan(
		&v.ID, &email, &phone, &v.PinCode, &v.ExpiresAt, &v.Verified, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("consume pin: %w", err)
	}
	if email.Valid {
		v.Email = &email.String
	}
	if phone.Valid {
		v.Phone = &phone.String
	}
	return &v, nil
}
