package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/route"
	"github.com/katalvlaran/indoornav/world"
)

// Map glyphs.
const (
	glyphOpen    = ' '
	glyphBlocked = '▒'
	glyphEntry   = '░'
	glyphVisited = '•'
	glyphAhead   = '·'
	glyphHere    = '@'
)

var (
	styleHere    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleVisited = lipgloss.NewStyle().Foreground(colorCyan)
	styleMap     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

func (c *CLI) walkCommand() *cobra.Command {
	var (
		flags    routeFlags
		interval time.Duration
		play     bool
	)
	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Step through a planned route on the floor map",
		Long:  "walk plans a route like the route command and replays it one lattice step at a time. Playback pauses at the end of every segment until enter is pressed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, e, err := c.planRoute(cmd.Context(), flags)
			if err != nil {
				return err
			}
			if !res.Complete {
				printWarning(cmd.ErrOrStderr(), "route is incomplete: %v", res.Err)
			}
			if len(res.Segments) == 0 {
				printInfo(cmd.OutOrStdout(), "nothing to walk")
				return nil
			}
			m := newWalkModel(e.world, res.Segments, interval, play)
			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", 80*time.Millisecond, "time between steps during playback")
	cmd.Flags().BoolVar(&play, "play", true, "start playing immediately")
	return cmd
}

type tickMsg time.Time

// walkModel replays route segments point by point.
type walkModel struct {
	world    *world.World
	segs     []route.Segment
	seg      int
	step     int
	playing  bool
	interval time.Duration
	cols     int
	rows     int
}

func newWalkModel(w *world.World, segs []route.Segment, interval time.Duration, play bool) walkModel {
	return walkModel{
		world:    w,
		segs:     segs,
		playing:  play,
		interval: interval,
		cols:     50,
		rows:     25,
	}
}

func (m walkModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m walkModel) Init() tea.Cmd {
	if m.playing {
		return m.tick()
	}
	return nil
}

func (m walkModel) current() route.Segment { return m.segs[m.seg] }

// atBoundary reports whether the walker stands on the last point of the
// current segment.
func (m walkModel) atBoundary() bool {
	return m.step >= len(m.current().Points)-1
}

func (m walkModel) finished() bool {
	return m.seg == len(m.segs)-1 && m.atBoundary()
}

func (m walkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.playing = !m.playing
			if m.playing && !m.atBoundary() {
				return m, m.tick()
			}
		case "right", "l":
			if !m.atBoundary() {
				m.step++
			}
		case "enter", "n":
			if !m.atBoundary() {
				m.step = len(m.current().Points) - 1
				return m, nil
			}
			if m.finished() {
				return m, tea.Quit
			}
			m.seg++
			m.step = 0
			if m.playing {
				return m, m.tick()
			}
		}
	case tickMsg:
		if !m.playing || m.atBoundary() {
			return m, nil
		}
		m.step++
		if m.atBoundary() {
			return m, nil
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.cols = max(20, min(100, msg.Width-4))
		m.rows = max(10, min(50, msg.Height-8))
	}
	return m, nil
}

func (m walkModel) View() string {
	seg := m.current()
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Floor %d", seg.Floor)))
	b.WriteString(styleDim.Render(fmt.Sprintf("  segment %d/%d · step %d/%d", m.seg+1, len(m.segs), m.step+1, len(seg.Points))))
	b.WriteString("\n")
	b.WriteString(styleValue.Render(seg.Instruction))
	if seg.Fallback {
		b.WriteString(styleWarning.Render("  (no walkable path, straight line)"))
	}
	b.WriteString("\n")
	b.WriteString(styleMap.Render(renderFloor(m.world, seg.Floor, seg.Points, m.step, m.cols, m.rows)))
	b.WriteString("\n")

	switch {
	case m.finished():
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " arrived · ⏎ quit")
	case m.atBoundary():
		b.WriteString(styleIconInfo.Render(iconInfo) + " ⏎ next segment  q quit")
	default:
		b.WriteString(styleDim.Render("space play/pause  → step  ⏎ skip  q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// renderFloor draws floor as a cols×rows character map with the path
// drawn up to and including points[upto].
func renderFloor(w *world.World, floor int, points []geom.Point, upto, cols, rows int) string {
	grid := make([][]string, rows)
	idx := w.Obstacles()
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			p := geom.Pt((float64(c)+0.5)*geom.PlaneMax/float64(cols), (float64(r)+0.5)*geom.PlaneMax/float64(rows), floor)
			grid[r][c] = string(glyphOpen)
			if idx.Blocked(p, floor) {
				grid[r][c] = styleDim.Render(string(glyphBlocked))
			}
		}
	}
	for _, a := range w.AreasOn(floor) {
		if a.Blocks() {
			continue
		}
		c0, r0 := cellOf(geom.Pt(a.X, a.Y, floor), cols, rows)
		c1, r1 := cellOf(geom.Pt(a.X+a.Width, a.Y+a.Height, floor), cols, rows)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				grid[r][c] = string(glyphEntry)
			}
		}
	}
	for _, n := range w.NodesOn(floor) {
		c, r := cellOf(n.Point(), cols, rows)
		glyph := "T"
		if n.Type != "" {
			glyph = strings.ToUpper(string(n.Type)[:1])
		}
		grid[r][c] = styleWarning.Render(glyph)
	}
	for i, p := range points {
		c, r := cellOf(p, cols, rows)
		switch {
		case i == upto:
			// drawn last
		case i < upto:
			grid[r][c] = styleVisited.Render(string(glyphVisited))
		default:
			grid[r][c] = styleDim.Render(string(glyphAhead))
		}
	}
	if upto >= 0 && upto < len(points) {
		c, r := cellOf(points[upto], cols, rows)
		grid[r][c] = styleHere.Render(string(glyphHere))
	}

	lines := make([]string, rows)
	for r, row := range grid {
		lines[r] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// cellOf maps a plane point to its map cell, clamped to the grid.
func cellOf(p geom.Point, cols, rows int) (int, int) {
	c := int(p.X / geom.PlaneMax * float64(cols))
	r := int(p.Y / geom.PlaneMax * float64(rows))
	return min(max(c, 0), cols-1), min(max(r, 0), rows-1)
}
