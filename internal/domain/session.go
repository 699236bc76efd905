package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInactiveSession indicates that a newer session replaced this one.
	ErrInactiveSession = errors.New("inactive session")
	// ErrInvalidClient indicates that the session belongs to another client.
	ErrInvalidClient = errors.New("incorrect session client")
	// ErrExpiredSession indicates that the session has expired.
	ErrExpiredSession = errors.New("expired session")
	// ErrSessionNotFound indicates that the session is not found.
	ErrSessionNotFound = errors.New("session not found")
)

// Session holds an issued access session of a client.
type Session struct {
	ID         uuid.UUID `json:"id"`
	ClientName string    `json:"client_name"`
	UserAgent  string    `json:"user_agent"`
	ClientIP   string    `json:"client_ip"`
	IsActive   bool      `json:"is_active"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateSessionParams holds data needed for Session creation.
type CreateSessionParams struct {
	ID         uuid.UUID
	ClientName string
	UserAgent  string
	ClientIP   string
	ExpiresAt  time.Time
}
