package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/session"
)

// CookieName holds the workspace id.
const CookieName = "cabinet_session"

// workspace is one visitor's cabinet. mu serialises every read and edit
// of cab; the model itself is not safe for concurrent use.
type workspace struct {
	mu       sync.Mutex
	id       string
	cab      *cabinet.Cabinet
	sess     *session.Session
	lastUsed time.Time
}

// snapshot returns a copy of the cabinet that is safe to render unlocked.
func (ws *workspace) snapshot() *cabinet.Cabinet {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.cab.Clone()
}

// Workspaces maps workspace ids to live cabinets and mirrors every change
// into a session store.
type Workspaces struct {
	mu     sync.Mutex
	live   map[string]*workspace
	store  session.Store
	ttl    time.Duration
	logger *log.Logger

	// Starter builds the cabinet for a new workspace.
	Starter func() *cabinet.Cabinet
}

// NewWorkspaces creates a workspace registry backed by store.
func NewWorkspaces(store session.Store, ttl time.Duration, logger *log.Logger) *Workspaces {
	if store == nil {
		store = session.NewMemoryStore()
	}
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &Workspaces{
		live:    make(map[string]*workspace),
		store:   store,
		ttl:     ttl,
		logger:  logger,
		Starter: StarterCabinet,
	}
}

// StarterCabinet returns the cabinet a fresh workspace starts with: a
// 60 cm and an 80 cm column.
func StarterCabinet() *cabinet.Cabinet {
	c := cabinet.New()
	_ = c.AddColumn(60)
	_ = c.AddColumn(80)
	return c
}

// Get returns the workspace for id, restoring it from the session store or
// creating a new one. created reports whether the caller must set a cookie.
func (w *Workspaces) Get(ctx context.Context, id string) (ws *workspace, created bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if session.ValidID(id) {
		if ws, ok := w.live[id]; ok {
			ws.lastUsed = time.Now()
			return ws, false, nil
		}
		sess, err := w.store.Get(ctx, id)
		if err != nil {
			w.logger.Warn("session lookup failed", "id", id, "error", err)
		}
		if sess != nil {
			if cab, err := sess.Cabinet(); err == nil {
				ws := &workspace{id: id, cab: cab, sess: sess, lastUsed: time.Now()}
				w.live[id] = ws
				w.logger.Debug("restored workspace", "id", id)
				return ws, false, nil
			}
			w.logger.Warn("discarding unreadable workspace", "id", id)
		}
	}

	sess, err := session.New(w.Starter(), w.ttl)
	if err != nil {
		return nil, false, err
	}
	cab, err := sess.Cabinet()
	if err != nil {
		return nil, false, err
	}
	ws = &workspace{id: sess.ID, cab: cab, sess: sess, lastUsed: time.Now()}
	if err := w.store.Set(ctx, sess); err != nil {
		w.logger.Warn("session save failed", "id", sess.ID, "error", err)
	}
	w.live[sess.ID] = ws
	return ws, true, nil
}

// persist writes ws's cabinet to the session store. The caller holds ws.mu.
func (w *Workspaces) persist(ctx context.Context, ws *workspace) error {
	if err := ws.sess.Update(ws.cab, w.ttl); err != nil {
		return err
	}
	return w.store.Set(ctx, ws.sess)
}

// Sweep drops workspaces idle for longer than the TTL from memory and
// removes expired sessions from the store.
func (w *Workspaces) Sweep(ctx context.Context, now time.Time) int {
	w.mu.Lock()
	n := 0
	for id, ws := range w.live {
		if now.Sub(ws.lastUsed) > w.ttl {
			delete(w.live, id)
			n++
		}
	}
	w.mu.Unlock()

	if err := w.store.Cleanup(ctx); err != nil {
		w.logger.Warn("session cleanup failed", "error", err)
	}
	return n
}

// Len returns the number of live workspaces.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.live)
}

func (w *Workspaces) cookie(id string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(w.ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
