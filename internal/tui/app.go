// Package tui drives the research and generation pipeline interactively:
// topic in, styled post out, with regenerate and improve-hook actions.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tcoelho/intelpost/internal/cache"
	"github.com/tcoelho/intelpost/internal/content"
	"github.com/tcoelho/intelpost/internal/research"
)

type mode int

const (
	modeTopic mode = iota
	modeStyle
	modeResearching
	modeGenerating
	modePost
)

var researchTypes = []string{"company", "trend", "technology", "news"}

type App struct {
	orchestrator *research.Orchestrator
	generator    *content.Generator

	mode        mode
	topicInput  textinput.Model
	spinner     spinner.Model
	styleCursor int
	typeCursor  int

	topic  string
	record *cache.Record
	post   string

	width  int
	height int
	err    error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Orchestrator *research.Orchestrator
	Generator    *content.Generator
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Topic to research (company, technology, trend...)"
	ti.Prompt = promptStyle.Render("> ")
	ti.CharLimit = 120
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		orchestrator: opts.Orchestrator,
		generator:    opts.Generator,
		topicInput:   ti,
		spinner:      sp,
	}
}

func Run(opts RunOpts) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) selectedStyle() content.PostStyle {
	return content.Styles()[a.styleCursor]
}

func (a *App) researchCmd() tea.Cmd {
	topic := a.topic
	researchType := researchTypes[a.typeCursor]
	return func() tea.Msg {
		rec, err := a.orchestrator.Research(context.Background(), topic, researchType)
		if err != nil {
			return researchErrMsg{err}
		}
		return researchDoneMsg{rec}
	}
}

func (a *App) generateCmd() tea.Cmd {
	topic, summary, style := a.topic, a.record.Summary, a.selectedStyle()
	return func() tea.Msg {
		return postDoneMsg{a.generator.Generate(context.Background(), topic, summary, style, "")}
	}
}

func (a *App) regenerateCmd() tea.Cmd {
	topic, summary, style, prev := a.topic, a.record.Summary, a.selectedStyle(), a.post
	return func() tea.Msg {
		return postDoneMsg{a.generator.Regenerate(context.Background(), topic, summary, style, prev)}
	}
}

func (a *App) improveHookCmd() tea.Cmd {
	topic, post := a.topic, a.post
	return func() tea.Msg {
		return postDoneMsg{a.generator.ImproveHook(context.Background(), post, topic)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if a.mode == modeResearching || a.mode == modeGenerating {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case researchErrMsg:
		a.err = msg.err
		a.mode = modeTopic
		return a, nil

	case researchDoneMsg:
		a.record = msg.rec
		a.mode = modeGenerating
		return a, tea.Batch(a.spinner.Tick, a.generateCmd())

	case postDoneMsg:
		a.post = msg.post
		a.mode = modePost
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.mode == modeTopic {
		var cmd tea.Cmd
		a.topicInput, cmd = a.topicInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch a.mode {
	case modeTopic:
		switch msg.Type {
		case tea.KeyEnter:
			topic := strings.TrimSpace(a.topicInput.Value())
			if topic == "" {
				return a, nil
			}
			a.topic = topic
			a.err = nil
			a.mode = modeStyle
			return a, nil
		case tea.KeyEsc:
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.topicInput, cmd = a.topicInput.Update(msg)
		return a, cmd

	case modeStyle:
		switch msg.String() {
		case "up", "k":
			if a.styleCursor > 0 {
				a.styleCursor--
			}
		case "down", "j":
			if a.styleCursor < len(content.Styles())-1 {
				a.styleCursor++
			}
		case "left", "h":
			if a.typeCursor > 0 {
				a.typeCursor--
			}
		case "right", "l":
			if a.typeCursor < len(researchTypes)-1 {
				a.typeCursor++
			}
		case "enter":
			a.mode = modeResearching
			return a, tea.Batch(a.spinner.Tick, a.researchCmd())
		case "esc":
			a.mode = modeTopic
		case "q":
			return a, tea.Quit
		}
		return a, nil

	case modePost:
		switch msg.String() {
		case "r":
			a.mode = modeGenerating
			return a, tea.Batch(a.spinner.Tick, a.regenerateCmd())
		case "i":
			a.mode = modeGenerating
			return a, tea.Batch(a.spinner.Tick, a.improveHookCmd())
		case "n", "esc":
			a.topicInput.SetValue("")
			a.topicInput.Focus()
			a.mode = modeTopic
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	return a, nil
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("intelpost"))
	b.WriteString(dimStyle.Render("  research → post"))
	b.WriteString("\n\n")

	if a.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf(" %v", a.err)))
		b.WriteString("\n\n")
	}

	switch a.mode {
	case modeTopic:
		b.WriteString(" " + a.topicInput.View() + "\n")
		b.WriteString(helpStyle.Render("enter: research • esc: quit"))

	case modeStyle:
		fmt.Fprintf(&b, " Topic: %s\n\n", a.topic)
		b.WriteString(" Research type: ")
		for i, rt := range researchTypes {
			if i == a.typeCursor {
				b.WriteString(cursorStyle.Render("[" + rt + "]"))
			} else {
				b.WriteString(dimStyle.Render(" " + rt + " "))
			}
		}
		b.WriteString("\n\n Post style:\n")
		for i, style := range content.Styles() {
			if i == a.styleCursor {
				b.WriteString(cursorStyle.Render(" ❯ "+style.String()) + "\n")
			} else {
				b.WriteString(dimStyle.Render("   "+style.String()) + "\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓: style • ←/→: type • enter: go • esc: back"))

	case modeResearching:
		fmt.Fprintf(&b, " %s Researching %q...\n", a.spinner.View(), a.topic)

	case modeGenerating:
		fmt.Fprintf(&b, " %s Writing %s post...\n", a.spinner.View(), a.selectedStyle())

	case modePost:
		header := fmt.Sprintf(" Topic: %s • Style: %s", a.topic, a.selectedStyle())
		if a.record != nil && a.record.Cached {
			header += cachedBadgeStyle.Render("  [cached]")
		}
		b.WriteString(header + "\n")
		if a.record != nil {
			b.WriteString(dimStyle.Render(fmt.Sprintf(" Sentiment: %s", a.record.Sentiment)) + "\n")
		}
		b.WriteString("\n")

		width := a.width - 4
		if width < 20 || width > 100 {
			width = 76
		}
		b.WriteString(postPaneStyle.Width(width).Render(a.post))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("r: regenerate • i: improve hook • n: new topic • q: quit"))
	}

	return lipgloss.NewStyle().Padding(1, 1).Render(b.String())
}
