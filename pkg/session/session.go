// Package session keeps the web designer's per-browser workspaces.
//
// A workspace is the cabinet a visitor is editing. The server holds the
// live model in memory and writes a snapshot here after every edit, so a
// restart or a second server instance picks the design up again.
//
// Two backends implement [Store]:
//   - [MemoryStore]: process-local; development and tests
//   - [FileStore]: one JSON file per workspace; survives restarts
//
// # Usage
//
//	store, err := session.NewFileStore("")  // ~/.config/cabinetry/sessions/
//	sess, err := session.New(cab, session.DefaultTTL)
//	store.Set(ctx, sess)
//
//	sess, err = store.Get(ctx, id)
//	if sess == nil {
//	    // unknown or expired workspace
//	}
//	cab, err := sess.Cabinet()
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/io"
)

// DefaultTTL is how long an idle workspace is kept.
const DefaultTTL = 30 * 24 * time.Hour

// Session is a snapshot of one workspace.
type Session struct {
	ID        string          `json:"id"`
	Design    json.RawMessage `json:"design"`
	ExpiresAt time.Time       `json:"expires_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Cabinet decodes the stored design.
func (s *Session) Cabinet() (*cabinet.Cabinet, error) {
	return io.Unmarshal(s.Design)
}

// Update replaces the stored design and extends the expiry by ttl.
func (s *Session) Update(c *cabinet.Cabinet, ttl time.Duration) error {
	data, err := io.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "snapshot workspace")
	}
	s.Design = data
	s.ExpiresAt = time.Now().Add(ttl)
	return nil
}

// Store is the interface for workspace storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// GenerateID returns a new random workspace ID.
func GenerateID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one [GenerateID] produced. Cookie
// values are checked before they reach a store.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// New creates a session holding c.
func New(c *cabinet.Cabinet, ttl time.Duration) (*Session, error) {
	now := time.Now()
	s := &Session{ID: GenerateID(), CreatedAt: now}
	if err := s.Update(c, ttl); err != nil {
		return nil, err
	}
	return s, nil
}
