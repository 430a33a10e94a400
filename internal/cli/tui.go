package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/observability"
	"github.com/matzehuels/cabinetry/pkg/render/layout"
	"github.com/matzehuels/cabinetry/pkg/render/sink"
)

// Move steps in cm.
const (
	moveCoarse = 5.0
	moveFine   = 1.0
)

// =============================================================================
// MoveModel - Interactive shelf positioning
// =============================================================================

// MoveModel is the bubbletea model for moving one shelf with the keyboard.
// It edits a copy; the caller applies it only when Confirmed is set.
type MoveModel struct {
	Work      *cabinet.Cabinet
	Col       int
	Shelf     int
	Confirmed bool

	ctx     context.Context
	lastErr error
}

// NewMoveModel starts a move session on a copy of c.
func NewMoveModel(ctx context.Context, c *cabinet.Cabinet, col, shelf int) MoveModel {
	return MoveModel{Work: c.Clone(), Col: col, Shelf: shelf, ctx: ctx}
}

func (m MoveModel) Init() tea.Cmd {
	return nil
}

func (m MoveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "enter", "q":
		m.Confirmed = true
		return m, tea.Quit
	case "esc", "ctrl+c":
		return m, tea.Quit
	case "u", "pgup":
		m.move(moveCoarse)
	case "d", "pgdown":
		m.move(-moveCoarse)
	case "U", "up", "k":
		m.move(moveFine)
	case "D", "down", "j":
		m.move(-moveFine)
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	}
	return m, nil
}

func (m *MoveModel) move(delta float64) {
	m.lastErr = m.Work.MoveShelf(m.Col, m.Shelf, delta)
	observability.Design().OnMutation(m.ctx, "move_shelf", m.lastErr)
}

func (m *MoveModel) cycle(step int) {
	hs, err := m.Work.Shelves(m.Col)
	if err != nil || len(hs) == 0 {
		return
	}
	m.Shelf = (m.Shelf + step + len(hs)) % len(hs)
	m.lastErr = nil
}

// height returns the selected shelf's height, or NaN when it is gone.
func (m MoveModel) height() float64 {
	hs, err := m.Work.Shelves(m.Col)
	if err != nil || m.Shelf < 0 || m.Shelf >= len(hs) {
		return math.NaN()
	}
	return hs[m.Shelf]
}

func (m MoveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Interactive Move Mode"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("u/d ±5 cm  ↑/↓ ±1 cm  tab next shelf  ⏎ confirm  esc cancel"))
	b.WriteString("\n\n")

	h := m.height()
	selected := -1
	if !math.IsNaN(h) {
		selected = 1 + int(math.Round((m.Work.TotalHeight()-h)/sink.CellHeight))
	}
	lines := strings.Split(sink.RenderText(layout.Project(m.Work)), "\n")
	for i, line := range lines {
		if i == selected {
			line = styleSelected.Render(line + "  ◀")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Column %d · shelf %d is at %s cm\n",
		m.Col+1, m.Shelf+1, StyleNumber.Render(fmt.Sprintf("%.1f", h)))
	if m.lastErr != nil {
		b.WriteString(StyleWarning.Render(iconWarning + " " + errors.UserMessage(m.lastErr)))
		b.WriteString("\n")
	}
	return b.String()
}

// runMoveProgram runs the move UI on the terminal and applies the result
// to c when the user confirms.
func runMoveProgram(ctx context.Context, c *cabinet.Cabinet, col, shelf int) error {
	p := tea.NewProgram(NewMoveModel(ctx, c, col, shelf), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("move mode: %w", err)
	}
	if m, ok := final.(MoveModel); ok && m.Confirmed {
		*c = *m.Work
	}
	return nil
}

// moveCommand creates the "move" command.
func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <design> <col> <shelf>",
		Short: "Move a shelf interactively and save the result",
		Long: `Open a design (a file path or a saved name), move one shelf with the
keyboard, and write the design back when confirmed. Column and shelf
numbers are 1-based.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			i, err := indexArg(args[1], "column")
			if err != nil {
				return err
			}
			j, err := indexArg(args[2], "shelf")
			if err != nil {
				return err
			}

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			sh := &Shell{Cabinet: cabinet.New(), Store: st, Out: c.Out, Move: runMoveProgram}
			if err := sh.load(ctx, args[0]); err != nil {
				return err
			}
			if err := sh.selectShelf(ctx, i, j); err != nil {
				return err
			}
			return sh.save(ctx, args[0])
		},
	}
}
