package tokenpkg

import (
	"fmt"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
	"github.com/google/uuid"
	"github.com/o1egl/paseto"
)

// PasetoMaker is a PASETO token maker.
type PasetoMaker struct {
	paseto       *paseto.V2
	symmetricKey []byte
}

// NewPasetoMaker creates a new PasetoMaker.
func NewPasetoMaker(symmetricKey string) (*PasetoMaker, error) {
	if len(symmetricKey) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("invalid key size: must be exactly %d characters", chacha20poly1305.KeySize)
	}

	maker := &PasetoMaker{
		paseto:       paseto.NewV2(),
		symmetricKey: []byte(symmetricKey),
	}

	return maker, nil
}

// CreateToken creates a new token for a specific client name and duration.
func (maker *PasetoMaker) CreateToken(clientName string, duration time.Duration) (string, *Payload, error) {
	payload, err := NewPayload(clientName, duration)
	if err != nil {
		return "", nil, err
	}

	return maker.encrypt(payload)
}

// CreateSessionToken creates a token bound to the session id.
func (maker *PasetoMaker) CreateSessionToken(sessionID uuid.UUID, clientName string, duration time.Duration) (string, *Payload, error) {
	return maker.encrypt(newPayloadWithID(sessionID, clientName, duration))
}

func (maker *PasetoMaker) encrypt(payload *Payload) (string, *Payload, error) {
	token, err := maker.paseto.Encrypt(maker.symmetricKey, payload, nil)
	if err != nil {
		return "", nil, err
	}

	return token, payload, nil
}

// VerifyToken checks if the token is valid or not.
func (maker *PasetoMaker) VerifyToken(token string) (*Payload, error) {
	payload := &Payload{}

	if err := maker.paseto.Decrypt(token, maker.symmetricKey, payload, nil); err != nil {
		return nil, ErrInvalidToken
	}

	if err := payload.Valid(); err != nil {
		return nil, err
	}

	return payload, nil
}
