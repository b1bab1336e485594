package models

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Validation limits for user credentials. The store rejects anything shorter
// at write time, before a password hash is ever computed.
const (
	MinUsernameLength = 3
	MinPasswordLength = 3
)

// User represents an account with a unique username and the list of notes it
// owns. PasswordHash is excluded from JSON so it can never leak through an
// API response; it still round-trips to the stores via the cbor tag and the
// gorm column.
//
// Notes is a denormalized back-reference maintained on note creation. The
// authoritative ownership relation is Note.UserID; Notes is a secondary index
// that can be rebuilt from the notes table at any time and must never be used
// for authorization decisions.
type User struct {
	ID           UserID    `gorm:"type:uuid;primary_key" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-" cbor:"passwordHash"`
	Notes        NoteIDs   `gorm:"type:jsonb" json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate hook to generate ID if not set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID.IsZero() {
		u.ID = NewUserID()
	}
	return nil
}

// Validate checks the structural invariants that hold regardless of backend.
// The username uniqueness invariant is the store's job, not Validate's.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if len(u.Username) < MinUsernameLength {
		return fmt.Errorf("username must be at least %d characters", MinUsernameLength)
	}
	return nil
}

// ValidatePassword checks a raw password before it is hashed.
func ValidatePassword(raw string) error {
	if raw == "" {
		return fmt.Errorf("password is required")
	}
	if len(raw) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// SetPassword validates raw and stores its bcrypt hash. The raw password is
// never kept on the struct.
func (u *User) SetPassword(raw string) error {
	if err := ValidatePassword(raw); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether raw matches the stored hash.
func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(raw)) == nil
}

// Note represents a content record with an importance flag and exactly one
// owning user. UserID is the authoritative ownership relation.
type Note struct {
	ID        NoteID    `gorm:"type:uuid;primary_key" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Important bool      `gorm:"not null;default:false" json:"important"`
	UserID    UserID    `gorm:"type:uuid;not null;index" json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate hook to generate ID if not set
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID.IsZero() {
		n.ID = NewNoteID()
	}
	return nil
}

// Validate checks that the note satisfies its creation invariants: non-empty
// content and exactly one owner.
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("content is required")
	}
	if n.UserID.IsZero() {
		return fmt.Errorf("note owner is required")
	}
	return nil
}

// NotePatch is a partial update of a note. Nil fields are left untouched.
type NotePatch struct {
	Content   *string `json:"content,omitempty"`
	Important *bool   `json:"important,omitempty"`
}

// Apply copies the set fields onto the note.
func (p NotePatch) Apply(n *Note) {
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Important != nil {
		n.Important = *p.Important
	}
}
