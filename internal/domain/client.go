package domain

import (
	"errors"
	"time"
)

var (
	// ErrClientAlreadyExists indicates that the client name is taken.
	ErrClientAlreadyExists = errors.New("client already exists")
	// ErrClientNotFound indicates that the client is not found.
	ErrClientNotFound = errors.New("client not found")
	// ErrWrongAPIKey indicates that the api key does not match the client.
	ErrWrongAPIKey = errors.New("wrong api key")
)

// Client is an API consumer allowed to manage accounts.
type Client struct {
	Name         string    `json:"client_name"`
	HashedAPIKey string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
