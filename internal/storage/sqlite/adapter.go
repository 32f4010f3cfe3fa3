// Package sqlite implements the storage.Storage interface on an embedded
// SQLite database. It is the development backend: session transcripts, code,
// and editor state are stored as a JSON document column, mirroring the
// MongoDB document shape.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"uiforge/internal/common/errors"
	"uiforge/internal/storage"
)

// Config holds SQLite connection settings
type Config struct {
	Path string
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("sqlite database path is required")
	}
	return nil
}

// Adapter implements storage.Storage on SQLite
type Adapter struct {
	db *sql.DB
}

// sessionDoc is the JSON document column of a session row.
type sessionDoc struct {
	Messages    []storage.Message      `json:"messages"`
	Code        storage.ComponentCode  `json:"code"`
	EditorState map[string]interface{} `json:"editor_state"`
}

// NewAdapter opens the database file and runs migrations.
func NewAdapter(config *Config) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sqlite config: %w", err)
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, errors.ConnectionError("failed to open database", err)
	}

	if err := db.Ping(); err != nil {
		return nil, errors.ConnectionError("failed to ping database", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, errors.ConnectionError("failed to migrate database", err)
	}

	return adapter, nil
}

func (a *Adapter) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			document TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_updated
			ON sessions(user_id, updated_at DESC)`,
	}

	for _, query := range queries {
		if _, err := a.db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// newID generates a 24-character hex identifier, matching the width of the
// Mongo backend's ids so they stay interchangeable at the API boundary.
func newID() string {
	b := make([]byte, 12)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func isUniqueViolation(err error) bool {
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

// Close closes the database
func (a *Adapter) Close(ctx context.Context) error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Health pings the database
func (a *Adapter) Health(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// User methods

func (a *Adapter) CreateUser(ctx context.Context, username, email, password string) (*storage.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("failed to hash password", err)
	}

	user := &storage.User{
		ID:           newID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = a.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ConflictError("username or email already in use")
		}
		return nil, errors.InternalError("failed to create user", err)
	}

	return user, nil
}

func (a *Adapter) scanUser(row *sql.Row) (*storage.User, error) {
	user := &storage.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundError("user")
	}
	if err != nil {
		return nil, errors.InternalError("failed to scan user", err)
	}
	return user, nil
}

func (a *Adapter) GetUser(ctx context.Context, userID string) (*storage.User, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`, userID)
	return a.scanUser(row)
}

func (a *Adapter) GetUserByUsername(ctx context.Context, username string) (*storage.User, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`, username)
	return a.scanUser(row)
}

func (a *Adapter) ValidateUser(ctx context.Context, username, password string) (*storage.User, error) {
	user, err := a.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, errors.AuthError("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.AuthError("invalid credentials")
	}

	return user, nil
}

// Session methods

func (a *Adapter) CreateSession(ctx context.Context, session *storage.Session) (*storage.Session, error) {
	now := time.Now().UTC()
	session.ID = newID()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Title == "" {
		session.Title = storage.DefaultTitle
	}
	if session.Messages == nil {
		session.Messages = []storage.Message{}
	}
	if session.EditorState == nil {
		session.EditorState = map[string]interface{}{}
	}

	doc, err := json.Marshal(sessionDoc{
		Messages:    session.Messages,
		Code:        session.Code,
		EditorState: session.EditorState,
	})
	if err != nil {
		return nil, errors.InternalError("failed to encode session document", err)
	}

	_, err = a.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, title, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.UserID, session.Title, string(doc), session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return nil, errors.InternalError("failed to create session", err)
	}

	return session, nil
}

func (a *Adapter) getSessionRow(ctx context.Context, id, userID string) (*storage.Session, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, document, created_at, updated_at FROM sessions
		 WHERE id = ? AND user_id = ? AND deleted_at IS NULL`, id, userID)

	session := &storage.Session{}
	var doc string
	err := row.Scan(&session.ID, &session.UserID, &session.Title, &doc, &session.CreatedAt, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundError("session")
	}
	if err != nil {
		return nil, errors.InternalError("failed to scan session", err)
	}

	var parsed sessionDoc
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, errors.InternalError("failed to decode session document", err)
	}
	session.Messages = parsed.Messages
	session.Code = parsed.Code
	session.EditorState = parsed.EditorState
	if session.Messages == nil {
		session.Messages = []storage.Message{}
	}
	if session.EditorState == nil {
		session.EditorState = map[string]interface{}{}
	}

	return session, nil
}

func (a *Adapter) GetSession(ctx context.Context, id, userID string) (*storage.Session, error) {
	return a.getSessionRow(ctx, id, userID)
}

func (a *Adapter) ListSessions(ctx context.Context, userID string, limit, offset int) ([]*storage.Session, int, error) {
	var total int
	err := a.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = ? AND deleted_at IS NULL`, userID).Scan(&total)
	if err != nil {
		return nil, 0, errors.InternalError("failed to count sessions", err)
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT id, user_id, title, document, created_at, updated_at FROM sessions
		 WHERE user_id = ? AND deleted_at IS NULL
		 ORDER BY updated_at DESC LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.InternalError("failed to list sessions", err)
	}
	defer rows.Close()

	sessions := []*storage.Session{}
	for rows.Next() {
		session := &storage.Session{}
		var doc string
		if err := rows.Scan(&session.ID, &session.UserID, &session.Title, &doc,
			&session.CreatedAt, &session.UpdatedAt); err != nil {
			return nil, 0, errors.InternalError("failed to scan session", err)
		}

		var parsed sessionDoc
		if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
			return nil, 0, errors.InternalError("failed to decode session document", err)
		}
		session.Messages = parsed.Messages
		session.Code = parsed.Code
		session.EditorState = parsed.EditorState
		if session.Messages == nil {
			session.Messages = []storage.Message{}
		}
		if session.EditorState == nil {
			session.EditorState = map[string]interface{}{}
		}

		sessions = append(sessions, session)
	}

	return sessions, total, rows.Err()
}

func (a *Adapter) writeSession(ctx context.Context, session *storage.Session) error {
	doc, err := json.Marshal(sessionDoc{
		Messages:    session.Messages,
		Code:        session.Code,
		EditorState: session.EditorState,
	})
	if err != nil {
		return errors.InternalError("failed to encode session document", err)
	}

	session.UpdatedAt = time.Now().UTC()
	res, err := a.db.ExecContext(ctx,
		`UPDATE sessions SET title = ?, document = ?, updated_at = ?
		 WHERE id = ? AND user_id = ? AND deleted_at IS NULL`,
		session.Title, string(doc), session.UpdatedAt, session.ID, session.UserID)
	if err != nil {
		return errors.InternalError("failed to update session", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.InternalError("failed to update session", err)
	}
	if affected == 0 {
		return errors.NotFoundError("session")
	}
	return nil
}

func (a *Adapter) UpdateSession(ctx context.Context, id, userID string, update *storage.SessionUpdate) (*storage.Session, error) {
	session, err := a.getSessionRow(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		session.Title = *update.Title
	}
	if update.Code != nil {
		session.Code = *update.Code
	}
	if update.EditorState != nil {
		session.EditorState = *update.EditorState
	}

	if err := a.writeSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (a *Adapter) AppendMessage(ctx context.Context, id, userID string, msg *storage.Message) (*storage.Session, error) {
	session, err := a.getSessionRow(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if msg.ID == "" {
		msg.ID = newID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	session.Messages = append(session.Messages, *msg)

	if err := a.writeSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (a *Adapter) DeleteSession(ctx context.Context, id, userID string) error {
	res, err := a.db.ExecContext(ctx,
		`UPDATE sessions SET deleted_at = ? WHERE id = ? AND user_id = ? AND deleted_at IS NULL`,
		time.Now().UTC(), id, userID)
	if err != nil {
		return errors.InternalError("failed to delete session", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.InternalError("failed to delete session", err)
	}
	if affected == 0 {
		return errors.NotFoundError("session")
	}
	return nil
}

func (a *Adapter) PurgeDeletedSessions(ctx context.Context, before time.Time) (int64, error) {
	res, err := a.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE deleted_at IS NOT NULL AND deleted_at < ?`, before)
	if err != nil {
		return 0, errors.InternalError("failed to purge deleted sessions", err)
	}
	return res.RowsAffected()
}
