// Package store keeps named cabinet designs.
//
// Two backends implement [Store]:
//
//   - [FileStore]: one <name>.json file per design in a directory; the
//     CLI default and the saved_designs folder of the web designer
//   - [MongoStore]: a MongoDB collection shared by several servers
//
// Both persist the same JSON document written by [io.WriteJSON], so a
// design exported from one backend loads in the other.
package store

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
)

// Store is a named design repository.
type Store interface {
	// Save writes c under name, replacing any existing design.
	Save(ctx context.Context, name string, c *cabinet.Cabinet) error

	// Load returns the design saved under name. A missing design is a
	// NOT_FOUND error; an unreadable one is LOAD_FAILED.
	Load(ctx context.Context, name string) (*cabinet.Cabinet, error)

	// List returns every saved design sorted by name.
	List(ctx context.Context) ([]Info, error)

	// Delete removes the design saved under name.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close() error
}

// Info describes a saved design.
type Info struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// ValidateName normalizes a design name and rejects anything that could
// escape the store. A trailing ".json" is dropped, so "kitchen.json" and
// "kitchen" name the same design.
func ValidateName(name string) (string, error) {
	n := strings.TrimSuffix(strings.TrimSpace(name), ".json")
	if !nameRe.MatchString(n) || strings.Contains(n, "..") {
		return "", errors.New(errors.ErrCodeInvalidName,
			"invalid design name %q (use letters, digits, '.', '_' or '-')", name)
	}
	return n, nil
}
