// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"vikrithi/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
// Absence is an expected lookup outcome, not a storage failure; callers branch
// on it with errors.Is.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByUsername retrieves the first account matching (kind, username),
	// or ErrAccountNotFound. Usernames are not unique within a collection.
	FindByUsername(ctx context.Context, kind entity.Kind, username string) (*entity.Account, error)

	// Create validates and persists a new account. A staged plaintext
	// credential is hashed before the document reaches the store.
	Create(ctx context.Context, account *entity.Account) error

	// Save persists mutations to an existing account, applying the same
	// credential hashing interception as Create.
	Save(ctx context.Context, account *entity.Account) error
}
