// Package tokenpkg issues and verifies access tokens.
package tokenpkg

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Supported token kinds.
const (
	KindJWT    = "jwt"
	KindPaseto = "paseto"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific client name and duration.
	CreateToken(clientName string, duration time.Duration) (string, *Payload, error)
	// CreateSessionToken creates a token whose payload id is the given session id.
	CreateSessionToken(sessionID uuid.UUID, clientName string, duration time.Duration) (string, *Payload, error)
	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// New returns the maker of the given kind.
func New(kind, symmetricKey string) (Maker, error) {
	switch kind {
	case KindJWT:
		return NewJWTMaker(symmetricKey)
	case KindPaseto:
		return NewPasetoMaker(symmetricKey)
	default:
		return nil, fmt.Errorf("unsupported token kind %q", kind)
	}
}
