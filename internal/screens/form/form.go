// Package form is a generic multi-field text form whose submission runs a
// tracker call.
package form

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/ui/components"
	"github.com/abhisek/proyo/internal/ui/layout"
	"github.com/abhisek/proyo/internal/ui/theme"
)

// Field describes one input.
type Field struct {
	Label       string
	Placeholder string
	Value       string
	Numeric     bool
	Required    bool
	CharLimit   int
}

// SubmitFunc validates values and returns the command that performs the
// change. The command must produce a screen.ResultMsg.
type SubmitFunc func(values []string) (tea.Cmd, error)

// DoneFunc decides what happens after a successful submission.
type DoneFunc func(screen.ResultMsg) tea.Cmd

// Form is a screen of labelled text inputs.
type Form struct {
	title   string
	intro   string
	inputs  []components.TextInput
	fields  []Field
	focus   int // len(inputs) means the submit button
	submit  SubmitFunc
	done    DoneFunc
	busy    bool
	errMsg  string
	verb    string
}

var (
	_ screen.Screen          = (*Form)(nil)
	_ screen.KeyHintProvider = (*Form)(nil)
	_ screen.InputCapturer   = (*Form)(nil)
)

// New creates a form. A nil done pops the form after success.
func New(title, intro, verb string, fields []Field, submit SubmitFunc, done DoneFunc) *Form {
	inputs := make([]components.TextInput, len(fields))
	for i, f := range fields {
		inputs[i] = components.NewTextInput(f.Label, f.Placeholder, f.Numeric, f.CharLimit)
		inputs[i].Model.SetValue(f.Value)
	}
	if done == nil {
		done = func(screen.ResultMsg) tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	if verb == "" {
		verb = "Guardar"
	}
	return &Form{title: title, intro: intro, verb: verb, inputs: inputs, fields: fields, submit: submit, done: done}
}

func (f *Form) Init() tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	return f.inputs[f.focus].Focus()
}

func (f *Form) Title() string {
	return f.title
}

func (f *Form) Capturing() bool {
	return f.focus < len(f.inputs)
}

func (f *Form) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: f.verb},
		{Key: "Esc", Description: "Cancel"},
	}
}

// Values returns the current input values.
func (f *Form) Values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f *Form) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ResultMsg:
		f.busy = false
		if msg.Err != nil {
			f.errMsg = msg.Err.Error()
			return f, nil
		}
		return f, f.done(msg)

	case tea.KeyPressMsg:
		if f.busy {
			return f, nil
		}
		switch msg.String() {
		case "esc":
			return f, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "down":
			return f, f.move(1)
		case "shift+tab", "up":
			return f, f.move(-1)
		case "enter":
			if f.focus < len(f.inputs)-1 {
				return f, f.move(1)
			}
			return f, f.trySubmit()
		}
	}

	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *Form) move(delta int) tea.Cmd {
	n := len(f.inputs) + 1
	if f.focus < len(f.inputs) {
		f.inputs[f.focus].Blur()
	}
	f.focus = (f.focus + delta + n) % n
	if f.focus < len(f.inputs) {
		return f.inputs[f.focus].Focus()
	}
	return nil
}

func (f *Form) trySubmit() tea.Cmd {
	values := f.Values()
	for i, fld := range f.fields {
		if fld.Required && values[i] == "" {
			f.errMsg = fmt.Sprintf("%s is required", fld.Label)
			return nil
		}
	}
	cmd, err := f.submit(values)
	if err != nil {
		f.errMsg = err.Error()
		return nil
	}
	f.errMsg = ""
	f.busy = true
	return cmd
}

func (f *Form) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	if f.intro != "" {
		b.WriteString(theme.Hint.Width(cw).Render(f.intro))
		b.WriteString("\n\n")
	}
	for i, in := range f.inputs {
		label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(in.Label)
		if i == f.focus {
			label = theme.Selected.Render(in.Label)
		}
		b.WriteString(label + "\n")
		b.WriteString(components.Card(in.View(), cw) + "\n")
	}

	b.WriteString("\n")
	switch {
	case f.busy:
		b.WriteString(theme.Hint.Render("Working..."))
	default:
		b.WriteString(components.Button(f.verb, f.focus == len(f.inputs), 20))
	}
	if f.errMsg != "" {
		b.WriteString("\n\n" + theme.Bad.Render(f.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
