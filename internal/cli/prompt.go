// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrPromptCanceled is returned when the user aborts a prompt.
var ErrPromptCanceled = errors.New("prompt canceled")

var (
	promptLabelStyle = lipgloss.NewStyle().Bold(true)
	promptHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// teaPrompter asks for values with a single-line bubbletea text input when
// in is a terminal, and reads plain lines otherwise.
type teaPrompter struct {
	in  io.Reader
	out io.Writer

	// lines buffers a non-terminal in across prompts.
	lines *bufio.Reader
}

// NewTeaPrompter returns a Prompter reading keys from in and rendering to
// out. When in is not a terminal each answer is one line of input, and an
// empty line or end of input accepts the default.
func NewTeaPrompter(in io.Reader, out io.Writer) Prompter {
	p := &teaPrompter{in: in, out: out}
	if !isTerminal(in) {
		p.lines = bufio.NewReader(in)
	}
	return p
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *teaPrompter) Prompt(label, defaultValue string) (string, error) {
	if p.lines != nil {
		return p.promptLine(label, defaultValue)
	}

	program := tea.NewProgram(
		newPromptModel(label, defaultValue),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("error running prompt: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.canceled {
		return "", ErrPromptCanceled
	}

	return m.value(), nil
}

func (p *teaPrompter) promptLine(label, defaultValue string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", promptHeader(label, defaultValue))

	line, err := p.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading answer: %w", err)
	}
	fmt.Fprintln(p.out)

	if v := strings.TrimSpace(line); v != "" {
		return v, nil
	}
	return defaultValue, nil
}

func promptHeader(label, defaultValue string) string {
	header := promptLabelStyle.Render(label)
	if defaultValue != "" {
		header += " " + promptHintStyle.Render("["+defaultValue+"]")
	}
	return header
}

// promptModel is the bubbletea model behind teaPrompter.
type promptModel struct {
	label        string
	defaultValue string
	input        textinput.Model
	done         bool
	canceled     bool
}

func newPromptModel(label, defaultValue string) promptModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = defaultValue
	ti.Focus()

	return promptModel{
		label:        label,
		defaultValue: defaultValue,
		input:        ti,
	}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptHeader(m.label, m.defaultValue))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	return b.String()
}

// value is the submitted answer, falling back to the default when empty.
func (m promptModel) value() string {
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return v
	}
	return m.defaultValue
}
