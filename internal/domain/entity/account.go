// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"errors"
	"time"
)

// Kind discriminates the two account variants the platform serves.
type Kind string

const (
	// KindDonor identifies a giver in the exchange.
	KindDonor Kind = "donor"

	// KindRecycler identifies a receiving company. Recycler accounts
	// additionally carry a company name.
	KindRecycler Kind = "recycler"
)

// ErrUnknownKind is returned by ParseKind for any tag other than
// "donor" or "recycler".
var ErrUnknownKind = errors.New("unknown account kind")

// ParseKind converts a raw user-type tag into a Kind.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindDonor:
		return KindDonor, nil
	case KindRecycler:
		return KindRecycler, nil
	default:
		return "", ErrUnknownKind
	}
}

// Collection names the backing document collection for the kind.
func (k Kind) Collection() string {
	if k == KindRecycler {
		return "receivers"
	}

	return "donors"
}

// Account is the core entity in the system. Donor and recycler accounts share
// the same field set and diverge only in CompanyName, so they are modelled as
// a single struct dispatched by the Kind tag.
type Account struct {
	ID           string    // Hex document ID assigned by the store on create.
	Kind         Kind      // Variant tag, decides which collection backs the account.
	Username     string    // Login identifier within the kind's collection.
	CompanyName  string    // Recycler accounts only; empty for donors.
	PhoneNumber  string    // Exactly 10 digits, validated before persistence.
	PasswordHash string    // bcrypt hash; never the plaintext credential once persisted.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.

	// Pending credential state consumed by the persistence layer's write
	// interceptor. Unexported so callers can only stage a plaintext through
	// SetPassword and can never persist it by accident.
	pendingPassword  string
	passwordModified bool
}

// SetPassword stages a plaintext credential for the next write. The
// persistence layer hashes it before the document reaches the store.
func (a *Account) SetPassword(plain string) {
	a.pendingPassword = plain
	a.passwordModified = true
}

// PendingPassword reports the staged plaintext credential, if any.
// It returns false when the credential was not modified since the last
// write, which tells the interceptor to leave the stored hash untouched.
func (a *Account) PendingPassword() (string, bool) {
	if !a.passwordModified {
		return "", false
	}

	return a.pendingPassword, true
}

// SetPasswordHash installs the hashed credential and clears any staged
// plaintext, marking the credential as unmodified.
func (a *Account) SetPasswordHash(hash string) {
	a.PasswordHash = hash
	a.pendingPassword = ""
	a.passwordModified = false
}
