// Package storage defines the document store interface and models for the
// uiforge service. Concrete backends live in the mongo and sqlite
// subpackages and are selected through NewStorage.
package storage

import (
	"context"
	"time"
)

// Storage is the document store behind the session and user APIs.
//
// Ownership invariant: every session operation takes the calling user's ID
// and filters on it, so a session belonging to another user (or one that has
// been soft-deleted) behaves exactly like a missing session and surfaces a
// not_found error.
type Storage interface {
	// Connection management
	Close(ctx context.Context) error
	Health(ctx context.Context) error

	// Users
	// CreateUser stores a new account with a bcrypt password hash.
	// Duplicate username or email yields a conflict error.
	CreateUser(ctx context.Context, username, email, password string) (*User, error)

	// GetUser retrieves an account by ID.
	GetUser(ctx context.Context, userID string) (*User, error)

	// GetUserByUsername retrieves an account by username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// ValidateUser checks credentials and returns the account on success.
	// Unknown username and wrong password are indistinguishable to callers.
	ValidateUser(ctx context.Context, username, password string) (*User, error)

	// Sessions
	// CreateSession stores a new session document and returns it with its ID
	// and timestamps populated.
	CreateSession(ctx context.Context, session *Session) (*Session, error)

	// GetSession retrieves one live session owned by userID.
	GetSession(ctx context.Context, id, userID string) (*Session, error)

	// ListSessions returns a page of the user's live sessions ordered by
	// updated_at descending, plus the total count.
	ListSessions(ctx context.Context, userID string, limit, offset int) ([]*Session, int, error)

	// UpdateSession applies the non-nil fields of update and bumps
	// updated_at. Returns the updated document.
	UpdateSession(ctx context.Context, id, userID string, update *SessionUpdate) (*Session, error)

	// AppendMessage appends one transcript message and bumps updated_at.
	AppendMessage(ctx context.Context, id, userID string, msg *Message) (*Session, error)

	// DeleteSession soft-deletes a session by setting deleted_at.
	DeleteSession(ctx context.Context, id, userID string) error

	// PurgeDeletedSessions permanently removes sessions soft-deleted before
	// the cutoff and returns how many were removed.
	PurgeDeletedSessions(ctx context.Context, before time.Time) (int64, error)
}
