package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amandersonyou/impact-timeline/pkg/timeline"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/layout"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/state"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/textwrap"
)

// reflowDebounce is how long a resize must stay quiet before the layout
// is recomputed. Terminals emit size events continuously during a drag.
const reflowDebounce = 250 * time.Millisecond

// Emphasis styles for the three visual weights.
var (
	styleActive = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	stylePast   = lipgloss.NewStyle().Foreground(colorGray)
	styleFuture = lipgloss.NewStyle().Foreground(colorDim)
)

// reflowMsg fires after the resize debounce interval. The sequence
// number identifies the resize burst it belongs to.
type reflowMsg struct {
	seq int
}

// viewModel is the bubbletea model for the interactive timeline view.
//
// Two coordinate spaces coexist: the pixel-space layout (kept current
// via Engine.Reflow so config-space geometry stays exercised) and the
// terminal line space the viewport scrolls in. Emphasis is computed in
// line space with the same nearest-center rule.
type viewModel struct {
	run *timelineRun
	st  state.TimelineState
	vp  viewport.Model

	// markers holds, per milestone, a line-space layout result whose Y
	// is the content line of the milestone header.
	markers []layout.Result

	cursor    int // hovered milestone index, state.None when inactive
	width     int
	height    int
	ready     bool
	resizeSeq int
}

func newViewModel(run *timelineRun) viewModel {
	return viewModel{
		run:    run,
		st:     state.New(run.dataset.Len(), 0),
		cursor: state.None,
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if msg.String() == "esc" && m.cursor != state.None {
				m.clearHover()
				m.vp.SetContent(m.content())
				return m, nil
			}
			return m, tea.Quit
		case "j", "down":
			m.moveCursor(1)
			m.vp.SetContent(m.content())
			return m, nil
		case "k", "up":
			m.moveCursor(-1)
			m.vp.SetContent(m.content())
			return m, nil
		case "g", "home":
			m.vp.GotoTop()
		case "G", "end":
			m.vp.GotoBottom()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
			m.rebuild()
			return m, nil
		}
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 2
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(reflowDebounce, func(time.Time) tea.Msg {
			return reflowMsg{seq: seq}
		})

	case reflowMsg:
		// Only the tick from the last resize in a burst reflows.
		if msg.seq == m.resizeSeq {
			m.rebuild()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	m.syncActive()
	m.vp.SetContent(m.content())
	return m, cmd
}

func (m viewModel) View() string {
	if !m.ready {
		return "Loading timeline..."
	}

	help := StyleDim.Render("j/k hover  esc clear  g/G jump  q quit")
	status := m.statusLine()
	return m.vp.View() + "\n" + status + "  " + help
}

func (m viewModel) statusLine() string {
	active := m.st.Active()
	if h := m.st.Hovered(); h != state.None {
		active = h
	}
	if active == state.None {
		return StyleDim.Render("—")
	}
	ms := m.run.dataset.Milestones[active]
	return StyleTitle.Render(ms.Date.Format("2006-01-02")) + " " +
		StyleValue.Render(ms.Title) + " " +
		categoryLabel(ms) + " " +
		StyleDim.Render(fmt.Sprintf("[%d/%d]", active+1, m.run.dataset.Len()))
}

// moveCursor shifts the hover cursor and applies the hover override.
func (m *viewModel) moveCursor(delta int) {
	next := m.cursor + delta
	if m.cursor == state.None {
		// First cursor movement starts from the active milestone.
		next = m.st.Active()
		if next == state.None {
			next = 0
		}
	}
	if next < 0 || next >= m.run.dataset.Len() {
		return
	}
	m.cursor = next
	m.st, _ = m.st.WithHover(next)
	m.scrollTo(next)
}

// clearHover drops the hover override, restoring scroll-driven emphasis.
func (m *viewModel) clearHover() {
	m.cursor = state.None
	m.st, _ = m.st.WithoutHover()
	m.syncActive()
}

// syncActive recomputes the active milestone from the scroll position
// using the shared nearest-center rule in line space.
func (m *viewModel) syncActive() {
	if len(m.markers) == 0 {
		return
	}
	idx := state.NearestCenter(m.markers, float64(m.vp.YOffset), float64(m.vp.Height))
	m.st, _ = m.st.WithActive(idx)
}

// scrollTo keeps the given milestone's header visible.
func (m *viewModel) scrollTo(i int) {
	if i < 0 || i >= len(m.markers) {
		return
	}
	line := int(m.markers[i].Y)
	if line < m.vp.YOffset {
		m.vp.SetYOffset(line)
	} else if line >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(line - m.vp.Height + 1)
	}
}

// rebuild recomputes both layouts for the current terminal size: the
// pixel-space results via Reflow, and the line-space content.
func (m *viewModel) rebuild() {
	// Terminal columns approximate viewport pixels through the
	// configured character width.
	pxWidth := float64(m.width) * m.run.cfg.Render.FontSize * m.run.cfg.Render.CharWidth
	if next, _, err := m.run.engine.Reflow(m.run.results, m.run.dataset, pxWidth); err == nil {
		m.run.results = next
	}

	m.vp.SetContent(m.content())
	m.syncActive()
}

// content renders every milestone as a block of styled lines and records
// each header's line number for the nearest-center computation.
func (m *viewModel) content() string {
	cols := m.width - 6
	if cols < 20 {
		cols = 20
	}
	measure := textwrap.CharWidth(1)

	var b strings.Builder
	m.markers = m.markers[:0]

	line := 0
	prevYear := 0
	for i, ms := range m.run.dataset.Milestones {
		if y := ms.Date.Year(); y != prevYear {
			b.WriteString(StyleTitle.Render(fmt.Sprintf("── %d ──", y)))
			b.WriteString("\n\n")
			line += 2
			prevYear = y
		}

		m.markers = append(m.markers, layout.Result{Index: i, Y: float64(line)})

		style := m.emphasisStyle(i)
		marker := "●"
		if ms.IsSpan() {
			marker = "▐"
		}

		header := fmt.Sprintf("%s %s  %s", marker, ms.Date.Format("2006-01-02"), ms.Title)
		for _, l := range textwrap.Wrap(header, float64(cols), measure) {
			b.WriteString(style.Render(l))
			b.WriteString("\n")
			line++
		}
		for _, l := range textwrap.Wrap(ms.Description, float64(cols-4), measure) {
			b.WriteString("    " + style.Faint(true).Render(l))
			b.WriteString("\n")
			line++
		}
		b.WriteString("\n")
		line++
	}

	return b.String()
}

func (m *viewModel) emphasisStyle(i int) lipgloss.Style {
	switch m.st.EmphasisFor(i) {
	case state.EmphasisActive:
		return styleActive
	case state.EmphasisPast:
		return stylePast
	default:
		return styleFuture
	}
}

// categoryLabel renders a milestone's category in its timeline color.
func categoryLabel(ms timeline.Milestone) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(timeline.CategoryColor(ms.Category))).
		Render(ms.Category)
}
