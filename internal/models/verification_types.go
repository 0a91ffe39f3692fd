package models

import "time"

// Verification delivery channels
const (
	MethodEmail = "email"
	MethodSMS   = "sms"
)

// EmailVerification is a one-time PIN row in 'email_verifications'.
// Exactly one of Email or Phone is set.
type EmailVerification struct {
	ID        string    `json:"id" db:"id"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	PinCode   string    `json:"-" db:"pin_code"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Verified  bool      `json:"verified" db:"verified"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PinIdentity is who a PIN was issued to. Phone is already normalized.
type PinIdentity struct {
	Email string
	Phone string
}
