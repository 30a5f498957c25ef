package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/scheduler"
	"github.com/aretw0/stepwise/pkg/session"
)

// Palette.
const (
	colorBar       = "#60a5fa"
	colorCompare   = "#facc15"
	colorMove      = "#f87171"
	colorSelect    = "#c084fc"
	colorDone      = "#34d399"
	colorWall      = "#64748b"
	colorVisited   = "#93c5fd"
	colorPath      = "#f472b6"
	colorDimmed    = "#94a3b8"
	colorHighlight = "#fde047"
)

// View renders session status as terminal text.
type View struct {
	out      *termenv.Output
	cat      *catalogue.Catalogue
	markdown func(string) (string, error)
	width    int
	code     bool
}

type ViewOption func(*View)

// WithWidth sets the number of columns available to a lane.
func WithWidth(n int) ViewOption {
	return func(v *View) {
		if n > 0 {
			v.width = n
		}
	}
}

// WithMarkdown sets the pseudocode renderer.
func WithMarkdown(fn func(string) (string, error)) ViewOption {
	return func(v *View) {
		v.markdown = fn
	}
}

// WithCode toggles the pseudocode panel.
func WithCode(show bool) ViewOption {
	return func(v *View) {
		v.code = show
	}
}

// NewView creates a view writing colours for out's profile.
func NewView(out *termenv.Output, cat *catalogue.Catalogue, opts ...ViewOption) *View {
	v := &View{out: out, cat: cat, width: 80, code: true, markdown: plain}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *View) paint(s, color string) string {
	return v.out.String(s).Foreground(v.out.Color(color)).String()
}

// Render draws the whole session: a header and one block per lane.
func (v *View) Render(st session.Status) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s  interval %s\n\n",
		v.out.String("session "+st.ID).Bold(), stateLabel(st.State), st.Interval)
	for _, l := range st.Lanes {
		sb.WriteString(v.Lane(l, st.Params))
		sb.WriteString("\n")
	}
	return sb.String()
}

func stateLabel(s domain.RunState) string {
	return strings.ToUpper(string(s))
}

// Lane draws one lane: title, progress, data and pseudocode.
func (v *View) Lane(l scheduler.LaneStatus, params domain.Params) string {
	name := string(l.Algorithm)
	var lines domain.LineTable
	if e, err := v.cat.Lookup(l.Algorithm); err == nil {
		name, lines = e.Name, e.Lines
	}

	var sb strings.Builder
	title := v.out.String(name).Bold().String()
	if l.Name != string(l.Algorithm) {
		title += " " + v.paint("("+l.Name+")", colorDimmed)
	}
	fmt.Fprintf(&sb, "%s  steps %d  %s\n", title, l.Steps, formatElapsed(l.Elapsed))

	if l.Last == nil {
		sb.WriteString(v.paint("waiting to start", colorDimmed) + "\n")
		return sb.String()
	}
	step := *l.Last
	if info := v.progress(step, params); info != "" {
		sb.WriteString(info + "\n")
	}
	if l.Done {
		fmt.Fprintf(&sb, "%s  Completed in %s\n", v.paint("FINISHED", colorDone), formatElapsed(l.Elapsed))
	}

	var body []string
	if step.Snapshot.IsGrid() {
		body = v.Grid(step, params)
	} else {
		body = v.Bars(step)
	}
	for _, line := range body {
		sb.WriteString(line + "\n")
	}

	if v.code && len(lines) > 0 {
		code, err := v.markdown(Pseudocode(lines, step.Line))
		if err == nil {
			sb.WriteString(code)
			if !strings.HasSuffix(code, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// progress describes how far a lane got.
func (v *View) progress(step domain.Step, params domain.Params) string {
	switch step.Algorithm.Kind() {
	case domain.KindSearch:
		switch {
		case step.Found():
			return fmt.Sprintf("target %d found at index %d", params.Target, step.Result.Index())
		case step.Terminal:
			return fmt.Sprintf("target %d not found", params.Target)
		default:
			return fmt.Sprintf("looking for %d", params.Target)
		}
	case domain.KindPath:
		switch {
		case step.Found():
			return fmt.Sprintf("path of %d cells found", len(step.Path))
		case step.Terminal:
			return "no path"
		default:
			return fmt.Sprintf("exploring %s", params.Goal)
		}
	default:
		n := len(step.Snapshot.Values)
		if n < 2 {
			return ""
		}
		return fmt.Sprintf("%d/%d sorted", step.Snapshot.SortedPairs(params.Direction), n-1)
	}
}

// Bars draws one horizontal bar per value, coloured by what the step did.
func (v *View) Bars(step domain.Step) []string {
	values := step.Snapshot.Values
	if len(values) == 0 {
		return []string{v.paint("(empty)", colorDimmed)}
	}
	lo, hi := min(0, values[0]), values[0]
	digits := 1
	for _, x := range values {
		lo, hi = min(lo, x), max(hi, x)
		digits = max(digits, len(fmt.Sprint(x)))
	}
	span := max(hi-lo, 1)
	room := max(v.width-digits-2, 1)

	marked := make(map[int]bool, len(step.Highlights))
	for _, p := range step.Highlights {
		marked[p.Index()] = true
	}
	color := highlightColor(step.Kind)

	out := make([]string, len(values))
	for i, x := range values {
		size := max((x-lo)*room/span, 1)
		bar := strings.Repeat("█", size)
		switch {
		case step.Terminal && step.Result != nil && step.Result.Index() == i:
			bar = v.paint(bar, colorDone)
		case step.Terminal && step.Algorithm.Kind() == domain.KindSort:
			bar = v.paint(bar, colorDone)
		case marked[i]:
			bar = v.paint(bar, color)
		default:
			bar = v.paint(bar, colorBar)
		}
		out[i] = fmt.Sprintf("%*d %s", digits, x, bar)
	}
	return out
}

func highlightColor(k domain.StepKind) string {
	switch k {
	case domain.StepCompare, domain.StepGuard, domain.StepMid:
		return colorCompare
	case domain.StepSwap, domain.StepShift, domain.StepPlace, domain.StepAdvance, domain.StepRetreat:
		return colorMove
	case domain.StepMatch, domain.StepGoal:
		return colorDone
	default:
		return colorSelect
	}
}

// Grid draws the maze with the current path and highlighted cells.
func (v *View) Grid(step domain.Step, params domain.Params) []string {
	g := step.Snapshot.Grid
	onPath := make(map[domain.Position]bool, len(step.Path))
	for _, p := range step.Path {
		onPath[p] = true
	}
	marked := make(map[domain.Position]bool, len(step.Highlights))
	for _, p := range step.Highlights {
		marked[p] = true
	}

	out := make([]string, g.Rows)
	for r := 0; r < g.Rows; r++ {
		var sb strings.Builder
		for c := 0; c < g.Cols; c++ {
			p := domain.Position{Row: r, Col: c}
			switch {
			case p == params.Start:
				sb.WriteString(v.paint("S ", colorDone))
			case p == params.Goal:
				sb.WriteString(v.paint("G ", colorMove))
			case marked[p]:
				sb.WriteString(v.paint("◆ ", colorHighlight))
			case onPath[p]:
				sb.WriteString(v.paint("● ", colorPath))
			case g.At(p) == domain.CellWall:
				sb.WriteString(v.paint("█ ", colorWall))
			case g.At(p) == domain.CellVisited:
				sb.WriteString(v.paint("░ ", colorVisited))
			default:
				sb.WriteString(v.paint("· ", colorDimmed))
			}
		}
		out[r] = strings.TrimRight(sb.String(), " ")
	}
	return out
}

// Pseudocode renders a line table as markdown with the active line marked.
func Pseudocode(lines domain.LineTable, active domain.LineID) string {
	var sb strings.Builder
	for i, line := range lines {
		marker := "  "
		if domain.LineID(i) == active {
			marker = "▶ "
		}
		fmt.Fprintf(&sb, "%s`%s`  \n", marker, line)
	}
	return sb.String()
}

// Summary lists how every lane ended, one line each.
func (v *View) Summary(st session.Status) string {
	var sb strings.Builder
	for _, l := range st.Lanes {
		result := "-"
		if l.Last != nil && l.Last.Result != nil {
			result = l.Last.Result.String()
		}
		fmt.Fprintf(&sb, "%-20s %6d steps  %10s  result %s\n", l.Name, l.Steps, formatElapsed(l.Elapsed), result)
	}
	return sb.String()
}

func formatElapsed(d time.Duration) string {
	return d.Round(10 * time.Millisecond).String()
}
