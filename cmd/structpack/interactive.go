package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/structpack"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateFormat modelState = iota
	stateInputValues
	stateShowResult
)

type interactiveModel struct {
	compileErr error
	packErr    error
	desc       *structpack.Descriptor
	config     *structpack.Config
	formatIn   textinput.Model
	inputs     []textinput.Model
	packed     []byte
	unpacked   []structpack.Value
	focusIdx   int
	state      modelState
}

func newInteractiveModel(format string, longWidth int) *interactiveModel {
	var cfg *structpack.Config
	if longWidth != 0 {
		cfg = &structpack.Config{LongWidth: longWidth}
	}

	ti := textinput.New()
	ti.Placeholder = "<hh3s?"
	ti.Prompt = "format: "
	ti.Width = 40
	ti.SetValue(format)
	ti.Focus()

	m := &interactiveModel{
		config:   cfg,
		formatIn: ti,
		state:    stateFormat,
	}
	m.tryCompile()
	return m
}

type packResultMsg struct {
	err      error
	packed   []byte
	unpacked []structpack.Value
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

// tryCompile recompiles the current format text so the view can show live
// feedback while typing.
func (m *interactiveModel) tryCompile() {
	m.desc, m.compileErr = structpack.CompileWithConfig(m.formatIn.Value(), m.config)
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			// Only a quit key when no text input has focus; q is a format
			// token and valid value text everywhere else.
			if m.state == stateShowResult {
				return m, tea.Quit
			}

		case "enter":
			switch m.state {
			case stateFormat:
				if m.compileErr != nil || m.desc == nil {
					return m, nil
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.doPack
				}
				m.state = stateInputValues
				return m, nil

			case stateInputValues:
				return m, m.doPack

			case stateShowResult:
				m.state = stateInputValues
				m.packed = nil
				m.unpacked = nil
				m.packErr = nil
				if len(m.inputs) == 0 {
					m.state = stateFormat
				}
				return m, nil
			}

		case "tab":
			if m.state == stateInputValues && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInputValues:
				m.state = stateFormat
				m.inputs = nil
				m.formatIn.Focus()
			case stateShowResult:
				m.state = stateFormat
				m.inputs = nil
				m.packed = nil
				m.unpacked = nil
				m.packErr = nil
				m.formatIn.Focus()
			}
			return m, nil
		}

	case packResultMsg:
		m.packErr = msg.err
		m.packed = msg.packed
		m.unpacked = msg.unpacked
		m.state = stateShowResult
		return m, nil
	}

	switch m.state {
	case stateFormat:
		var cmd tea.Cmd
		m.formatIn, cmd = m.formatIn.Update(msg)
		m.tryCompile()
		return m, cmd

	case stateInputValues:
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	fields := m.desc.Fields()
	m.formatIn.Blur()
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = fieldTypeStr(f)
		ti.Prompt = fmt.Sprintf("field%d: ", i)
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) doPack() tea.Msg {
	fields := m.desc.Fields()

	// Untouched trailing inputs mean missing values, which pack as zeros.
	n := len(m.inputs)
	for n > 0 && m.inputs[n-1].Value() == "" {
		n--
	}

	values := make([]structpack.Value, n)
	for i := 0; i < n; i++ {
		values[i] = convertArg(m.inputs[i].Value(), fields[i].Kind)
	}

	packed, err := m.desc.Pack(values)
	if err != nil {
		return packResultMsg{err: err}
	}

	unpacked, err := m.desc.Unpack(packed)
	if err != nil {
		return packResultMsg{err: err}
	}

	return packResultMsg{packed: packed, unpacked: unpacked}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("structpack"))
	b.WriteString("\n\n")

	switch m.state {
	case stateFormat:
		b.WriteString(m.formatIn.View())
		b.WriteString("\n\n")
		if m.compileErr != nil {
			b.WriteString(errorStyle.Render(m.compileErr.Error()))
		} else if m.desc != nil {
			b.WriteString(typeStyle.Render(m.layoutSummary()))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit values • ctrl+c quit"))

	case stateInputValues:
		fields := m.desc.Fields()
		b.WriteString(fieldStyle.Render(m.desc.Format()))
		b.WriteString("  ")
		b.WriteString(typeStyle.Render(m.layoutSummary()))
		b.WriteString("\n\n")
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(fieldTypeStr(fields[i])))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter pack • esc format • ctrl+c quit"))

	case stateShowResult:
		if m.packErr != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.packErr)))
		} else {
			fields := m.desc.Fields()
			b.WriteString(fmt.Sprintf("Packed %d bytes:\n\n  ", len(m.packed)))
			b.WriteString(resultStyle.Render(hex.EncodeToString(m.packed)))
			b.WriteString("\n\nUnpacked:\n\n")
			for i, v := range m.unpacked {
				b.WriteString(fmt.Sprintf("  %s %s\n",
					typeStyle.Render(fmt.Sprintf("%-8s", fields[i].Kind)),
					fieldStyle.Render(v.String())))
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter edit values • esc format • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) layoutSummary() string {
	return fmt.Sprintf("%d bytes • %d fields • %v", m.desc.Size(), m.desc.NumFields(), m.desc.Order())
}

func fieldTypeStr(f structpack.Field) string {
	if f.Kind == structpack.KindText {
		return fmt.Sprintf("%s[%d]", f.Kind, f.Length)
	}
	return f.Kind.String()
}

func runInteractive(format string, longWidth int) error {
	p := tea.NewProgram(newInteractiveModel(format, longWidth), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
