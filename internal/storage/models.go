package storage

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Message is one entry in a session's chat transcript.
type Message struct {
	ID        string    `json:"id" bson:"id"`
	Role      string    `json:"role" bson:"role"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Message roles. System messages are seeded by the server; clients may only
// append user and assistant messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ComponentCode holds the generated React component source for a session.
type ComponentCode struct {
	JSX string `json:"jsx" bson:"jsx"`
	CSS string `json:"css,omitempty" bson:"css,omitempty"`
}

// Session bundles a chat transcript, generated component source, and UI
// editor state for one authenticated user.
type Session struct {
	ID          string                 `json:"id" bson:"_id,omitempty"`
	UserID      string                 `json:"user_id" bson:"user_id"`
	Title       string                 `json:"title" bson:"title"`
	Messages    []Message              `json:"messages" bson:"messages"`
	Code        ComponentCode          `json:"code" bson:"code"`
	EditorState map[string]interface{} `json:"editor_state" bson:"editor_state"`
	CreatedAt   time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time             `json:"-" bson:"deleted_at,omitempty"`
}

// SessionUpdate carries the mutable fields of a session. Nil pointers leave
// the stored value untouched.
type SessionUpdate struct {
	Title       *string                 `json:"title,omitempty"`
	Code        *ComponentCode          `json:"code,omitempty"`
	EditorState *map[string]interface{} `json:"editor_state,omitempty"`
}

// DefaultTitle is assigned to sessions created without an explicit title.
const DefaultTitle = "Untitled component"
