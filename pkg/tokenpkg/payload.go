package tokenpkg

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Token verification errors.
var (
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("token is invalid")
)

// Payload contains the payload data of the token.
type Payload struct {
	ID         uuid.UUID `json:"id"`
	ClientName string    `json:"client_name"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiredAt  time.Time `json:"expired_at"`
}

// NewPayload creates a new token payload with a random id.
func NewPayload(clientName string, duration time.Duration) (*Payload, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	return newPayloadWithID(id, clientName, duration), nil
}

func newPayloadWithID(id uuid.UUID, clientName string, duration time.Duration) *Payload {
	now := time.Now()

	return &Payload{
		ID:         id,
		ClientName: clientName,
		IssuedAt:   now,
		ExpiredAt:  now.Add(duration),
	}
}

// Valid checks if the token payload is valid or not.
func (p *Payload) Valid() error {
	if time.Now().After(p.ExpiredAt) {
		return ErrExpiredToken
	}

	return nil
}
