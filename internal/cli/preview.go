package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/slidegen/slidegen/pkg/deck"
)

// Preview styles
var (
	previewHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewSlotStyle    = lipgloss.NewStyle().Foreground(colorGray)
	previewTextStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	previewDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	previewContinueWarn = lipgloss.NewStyle().Foreground(colorYellow)
)

// previewCommand creates the preview command for browsing a deck in the
// terminal.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [deck.json]",
		Short: "Browse a generated deck in the terminal",
		Long: `Browse a generated deck in the terminal.

Each slide is shown with its template, continuation status and positioned
elements. Use the arrow keys to move between slides.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deck.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load deck %s: %w", args[0], err)
			}
			if d.SlideCount() == 0 {
				printInfo("Deck has no slides")
				return nil
			}

			model := newDeckModel(d)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// DeckModel - Interactive slide browsing
// =============================================================================

// DeckModel is the bubbletea model for browsing deck slides.
type DeckModel struct {
	Deck   *deck.Deck
	Cursor int
	Width  int
	Height int
}

// newDeckModel creates a deck browsing model positioned on the first slide.
func newDeckModel(d *deck.Deck) DeckModel {
	return DeckModel{
		Deck:   d,
		Cursor: 0,
		Width:  80,
		Height: 24,
	}
}

func (m DeckModel) Init() tea.Cmd {
	return nil
}

func (m DeckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l", "down", "j", " ":
			if m.Cursor < m.Deck.SlideCount()-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = m.Deck.SlideCount() - 1
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	}
	return m, nil
}

func (m DeckModel) View() string {
	var b strings.Builder

	slide := &m.Deck.Slides[m.Cursor]

	b.WriteString(previewHeaderStyle.Render(m.Deck.Title))
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  %d/%d", m.Cursor+1, m.Deck.SlideCount())))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("←/→ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	header := fmt.Sprintf("template %s", slide.Template)
	if slide.Role != "" {
		header += fmt.Sprintf("  role %s", slide.Role)
	}
	if slide.IsContinuation() {
		header += "  " + previewContinueWarn.Render(fmt.Sprintf("continuation %d", slide.ContinuationIndex))
	}
	b.WriteString(previewSlotStyle.Render(header))
	b.WriteString("\n\n")

	for _, el := range slide.Elements {
		b.WriteString(renderElement(el, m.Width))
		b.WriteString("\n")
	}

	return b.String()
}

// renderElement formats one slide element as a two-line block.
func renderElement(el deck.Element, width int) string {
	var b strings.Builder

	label := fmt.Sprintf("%-6s %-8s %4.0f,%-4.0f %4.0f×%-4.0f",
		el.Kind, el.Slot, el.Frame.X, el.Frame.Y, el.Frame.Width, el.Frame.Height)
	if el.FontScale > 0 && el.FontScale < 1 {
		label += fmt.Sprintf("  ×%.2f", el.FontScale)
	}
	if el.Continued {
		label += "  " + previewContinueWarn.Render("continued")
	}
	b.WriteString(previewSlotStyle.Render(label))
	b.WriteString("\n")

	body := el.Text
	if body == "" {
		body = el.Ref
	}
	b.WriteString("  " + previewTextStyle.Render(truncate(firstLine(body), width-4)))

	return b.String()
}

// firstLine returns text up to the first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
