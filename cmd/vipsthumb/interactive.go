package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type field struct {
	name string
	hint string
}

var fields = []field{
	{"input", "path to source image"},
	{"output", "path to write, e.g. thumb.webp"},
	{"width", "pixels"},
	{"height", "pixels, optional"},
	{"size", "both | up | down | force"},
	{"crop", "none | centre | entropy | attention | low | high | all"},
	{"quality", "1-100, optional"},
}

type modelState int

const (
	stateEdit modelState = iota
	stateRunning
	stateShowResult
)

type interactiveModel struct {
	err      error
	result   string
	inputs   []textinput.Model
	base     job
	focusIdx int
	state    modelState
}

type runResultMsg struct {
	err    error
	result string
}

func newInteractiveModel(j job) *interactiveModel {
	values := []string{j.in, j.out, itoaOrEmpty(j.width), itoaOrEmpty(j.height), j.size, j.crop, itoaOrEmpty(j.quality)}
	m := &interactiveModel{base: j, state: stateEdit}
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-8s ", f.name)
		ti.Placeholder = f.hint
		ti.Width = 48
		ti.SetValue(values[i])
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	return m
}

func itoaOrEmpty(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateEdit {
				return m, tea.Quit
			}

		case "tab", "down":
			if m.state == stateEdit {
				m.moveFocus(1)
				return m, nil
			}

		case "shift+tab", "up":
			if m.state == stateEdit {
				m.moveFocus(-1)
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateEdit:
				j, err := m.job()
				if err != nil {
					m.err = err
					return m, nil
				}
				m.err = nil
				m.state = stateRunning
				return m, func() tea.Msg {
					report, err := run(j)
					return runResultMsg{result: report, err: err}
				}
			case stateShowResult:
				m.state = stateEdit
				m.result = ""
				m.err = nil
				return m, nil
			}

		case "esc":
			if m.state == stateShowResult {
				m.state = stateEdit
				m.result = ""
				m.err = nil
				return m, nil
			}
		}

	case runResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateEdit {
		var cmd tea.Cmd
		m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) moveFocus(delta int) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = (m.focusIdx + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focusIdx].Focus()
}

// job reads the form into a request, keeping flags the form does not show.
func (m *interactiveModel) job() (job, error) {
	j := m.base
	value := func(i int) string { return strings.TrimSpace(m.inputs[i].Value()) }
	number := func(i int) (int, error) {
		if value(i) == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(value(i))
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", fields[i].name, value(i))
		}
		return n, nil
	}

	j.in, j.out, j.size, j.crop = value(0), value(1), value(4), value(5)
	var err error
	if j.width, err = number(2); err != nil {
		return j, err
	}
	if j.height, err = number(3); err != nil {
		return j, err
	}
	if j.quality, err = number(6); err != nil {
		return j, err
	}
	if j.in == "" || j.out == "" || j.width <= 0 {
		return j, fmt.Errorf("input, output and a positive width are required")
	}
	return j, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("vipsthumb"))
	b.WriteString("\n\n")

	switch m.state {
	case stateEdit:
		for i, input := range m.inputs {
			b.WriteString(input.View())
			if i == m.focusIdx {
				b.WriteString(" ")
				b.WriteString(labelStyle.Render(fields[i].hint))
			}
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab/↓ next • shift+tab/↑ previous • enter run • ctrl+c quit"))

	case stateRunning:
		b.WriteString("Working...")

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(j job) error {
	p := tea.NewProgram(newInteractiveModel(j), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
