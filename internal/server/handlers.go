package server

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/cabinetry/pkg/buildinfo"
	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/observability"
	"github.com/matzehuels/cabinetry/pkg/pipeline"
	"github.com/matzehuels/cabinetry/pkg/store"
)

// =============================================================================
// Workspace resolution
// =============================================================================

// workspace resolves the caller's workspace and refreshes its cookie when a
// new one was created.
func (s *Server) workspace(w http.ResponseWriter, r *http.Request) (*workspace, error) {
	var id string
	if ck, err := r.Cookie(CookieName); err == nil {
		id = ck.Value
	}
	ws, created, err := s.workspaces.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if created {
		http.SetCookie(w, s.workspaces.cookie(ws.id, s.secure))
	}
	return ws, nil
}

// =============================================================================
// Pages
// =============================================================================

type columnView struct {
	Index    int
	Number   int
	Col      cabinet.Column
	Sections []sectionView
	Last     bool
}

type sectionView struct {
	ID      int
	Low     float64
	High    float64
	Divided bool
}

type indexView struct {
	Version      string
	Error        string
	TotalWidth   int
	Dims         cabinet.Dimensions
	Columns      []columnView
	Groups       []cabinet.Group
	Widths       []int
	Designs      []store.Info
	DesignsError string
	Stamp        int64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	c := ws.snapshot()

	v := indexView{
		Version:    buildinfo.Version,
		Error:      r.URL.Query().Get("error"),
		TotalWidth: c.TotalWidth(),
		Dims:       c.Dimensions(),
		Groups:     c.Groups(),
		Widths:     cabinet.ValidWidths,
		Stamp:      time.Now().UnixNano(),
	}
	for i, col := range c.Columns() {
		cv := columnView{Index: i, Number: i + 1, Col: col, Last: i == c.Len()-1}
		b, _ := c.Compartments(i)
		for j := 0; j < b.Count(); j++ {
			lo, hi := b.Span(j)
			cv.Sections = append(cv.Sections, sectionView{ID: j, Low: lo, High: hi, Divided: col.HasDivider(j)})
		}
		v.Columns = append(v.Columns, cv)
	}
	if s.designs != nil {
		if v.Designs, err = s.designs.List(r.Context()); err != nil {
			v.DesignsError = errors.UserMessage(err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", v); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handleRender(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := s.workspace(w, r)
		if err != nil {
			s.fail(w, err)
			return
		}
		res, err := s.runner.Render(r.Context(), ws.snapshot(), pipeline.Options{
			Formats: []string{format},
			Font:    s.font,
		})
		if err != nil {
			s.fail(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("ETag", `"`+res.DesignHash+`"`)
		_, _ = w.Write(res.Artifacts[format])
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	s.logger.Error("request failed", "error", err)
	http.Error(w, errors.UserMessage(err), status)
}

// =============================================================================
// Actions
// =============================================================================

// action applies one edit to ws. It runs with ws.mu held.
type action struct {
	run func(ctx context.Context, s *Server, ws *workspace, f form) error

	// mutation marks edits reported through DesignHooks.OnMutation.
	mutation bool
}

func (s *Server) handleAction(name string, a action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := s.workspace(w, r)
		if err != nil {
			s.fail(w, err)
			return
		}
		if err := r.ParseForm(); err != nil {
			s.redirect(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad form"))
			return
		}

		ctx := r.Context()
		ws.mu.Lock()
		err = a.run(ctx, s, ws, form{r})
		if err == nil {
			if perr := s.workspaces.persist(ctx, ws); perr != nil {
				s.logger.Warn("workspace not saved", "id", ws.id, "error", perr)
			}
		}
		ws.mu.Unlock()

		if a.mutation {
			observability.Design().OnMutation(ctx, name, err)
		}
		if err != nil {
			s.logger.Debug("action rejected", "action", name, "error", err)
		}
		s.redirect(w, r, err)
	}
}

// redirect sends the browser back to the index page, carrying err.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, err error) {
	target := "/"
	if err != nil {
		target += "?error=" + url.QueryEscape(errors.UserMessage(err))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func edit(fn func(c *cabinet.Cabinet, f form) error) action {
	return action{
		mutation: true,
		run: func(_ context.Context, _ *Server, ws *workspace, f form) error {
			return fn(ws.cab, f)
		},
	}
}

var actions = map[string]action{
	"add_column": edit(func(c *cabinet.Cabinet, f form) error {
		w, err := f.intField("width")
		if err != nil {
			return err
		}
		return c.AddColumn(w)
	}),
	"remove_column": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		return c.RemoveColumn(i)
	}),
	"move_column": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		switch d := f.str("direction"); d {
		case "left":
			return c.SwapColumns(i, i-1)
		case "right":
			return c.SwapColumns(i, i+1)
		default:
			return errors.New(errors.ErrCodeInvalidInput, "direction must be left or right, got %q", d)
		}
	}),
	"set_height": edit(func(c *cabinet.Cabinet, f form) error {
		h, err := f.floatField("height")
		if err != nil {
			return err
		}
		return c.SetTotalHeight(h)
	}),
	"set_plinth": edit(func(c *cabinet.Cabinet, f form) error {
		h, err := f.floatField("height")
		if err != nil {
			return err
		}
		return c.SetPlinthHeight(h)
	}),
	"toggle_top": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		return c.ToggleTop(i)
	}),
	"toggle_merge": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		return c.ToggleMergeRight(i)
	}),
	"set_shelves_count": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		n, err := f.intField("count")
		if err != nil {
			return err
		}
		return c.SetShelvesCount(i, n)
	}),
	"add_shelf": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		h, err := f.floatField("height")
		if err != nil {
			return err
		}
		return c.AddShelfAt(i, h)
	}),
	"remove_shelf": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		k, err := f.intField("shelf")
		if err != nil {
			return err
		}
		return c.RemoveShelf(i, k)
	}),
	"move_shelf": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		k, err := f.intField("shelf")
		if err != nil {
			return err
		}
		d, err := f.floatField("delta")
		if err != nil {
			return err
		}
		return c.MoveShelf(i, k, d)
	}),
	"subdivide": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		id, err := f.intField("compartment")
		if err != nil {
			return err
		}
		return c.SubdivideCompartment(i, id)
	}),
	"configure_drawers": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		n, err := f.intField("count")
		if err != nil {
			return err
		}
		h := cabinet.DefaultDrawerHeight
		if f.str("height") != "" {
			if h, err = f.floatField("height"); err != nil {
				return err
			}
		}
		return c.ConfigureDrawers(i, n, h)
	}),
	"toggle_drawers": edit(func(c *cabinet.Cabinet, f form) error {
		i, err := f.intField("col")
		if err != nil {
			return err
		}
		return c.ToggleDrawers(i)
	}),
	"reset": {
		mutation: true,
		run: func(_ context.Context, s *Server, ws *workspace, _ form) error {
			ws.cab = s.workspaces.Starter()
			return nil
		},
	},
	"save": {run: func(ctx context.Context, s *Server, ws *workspace, f form) error {
		name, err := s.designName(f)
		if err == nil {
			err = s.designs.Save(ctx, name, ws.cab)
		}
		observability.Design().OnPersist(ctx, "save", name, err)
		return err
	}},
	"load": {run: func(ctx context.Context, s *Server, ws *workspace, f form) error {
		name, err := s.designName(f)
		if err != nil {
			return err
		}
		c, err := s.designs.Load(ctx, name)
		observability.Design().OnPersist(ctx, "load", name, err)
		if err != nil {
			return err
		}
		ws.cab = c
		return nil
	}},
	"delete": {run: func(ctx context.Context, s *Server, _ *workspace, f form) error {
		name, err := s.designName(f)
		if err != nil {
			return err
		}
		return s.designs.Delete(ctx, name)
	}},
}

func (s *Server) designName(f form) (string, error) {
	if s.designs == nil {
		return "", errors.New(errors.ErrCodeUnsupported, "no design store configured")
	}
	return store.ValidateName(f.str("filename"))
}

// =============================================================================
// Form parsing
// =============================================================================

type form struct{ r *http.Request }

func (f form) str(key string) string { return strings.TrimSpace(f.r.PostFormValue(key)) }

func (f form) intField(key string) (int, error) {
	v := f.str(key)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a whole number", key, v)
	}
	return n, nil
}

func (f form) floatField(key string) (float64, error) {
	v := f.str(key)
	x, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", key, v)
	}
	return x, nil
}
