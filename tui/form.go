package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spektr-org/salesdesk/crm"
)

// Task form fields, in tab order.
const (
	fieldTitle = iota
	fieldClient
	fieldDue
	fieldType
	fieldCount
)

// taskForm is the add-task modal. The quick variant opened from the overview
// asks for a summary only.
type taskForm struct {
	inputs [fieldType]textinput.Model
	kind   int // index into crm.TaskTypes
	focus  int
	quick  bool
}

func newTaskForm() taskForm {
	var f taskForm
	placeholders := [fieldType]string{"Enter task summary", "Client", "Due"}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 120
		f.inputs[i] = in
	}
	return f
}

// open resets the form. The full form starts with due "Today" and type Call.
func (f taskForm) open(quick bool) (taskForm, tea.Cmd) {
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.quick = quick
	f.focus = fieldTitle
	f.kind = max(slices.Index(crm.TaskTypes, string(crm.TaskCall)), 0)
	if !quick {
		f.inputs[fieldDue].SetValue("Today")
	}
	cmd := f.inputs[fieldTitle].Focus()
	return f, cmd
}

func (f taskForm) close() taskForm {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f
}

// update feeds a key to the form. Tab cycles fields on the full form and
// left/right cycle the task type while it is focused.
func (f taskForm) update(msg tea.KeyMsg) (taskForm, tea.Cmd) {
	if !f.quick {
		switch msg.String() {
		case "tab":
			return f.focusField((f.focus + 1) % fieldCount)
		case "shift+tab":
			return f.focusField((f.focus + fieldCount - 1) % fieldCount)
		}
		if f.focus == fieldType {
			n := len(crm.TaskTypes)
			switch msg.String() {
			case "left", "h":
				f.kind = (f.kind + n - 1) % n
			case "right", "l", " ":
				f.kind = (f.kind + 1) % n
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f taskForm) focusField(i int) (taskForm, tea.Cmd) {
	if f.focus < fieldType {
		f.inputs[f.focus].Blur()
	}
	f.focus = i
	if i == fieldType {
		return f, nil
	}
	cmd := f.inputs[i].Focus()
	return f, cmd
}

func (f taskForm) title() string { return strings.TrimSpace(f.inputs[fieldTitle].Value()) }

// draft returns the entered task. Blank fields are left for crm.AddTask to
// default.
func (f taskForm) draft() crm.TaskDraft {
	d := crm.TaskDraft{Title: f.title()}
	if f.quick {
		return d
	}
	d.Client = strings.TrimSpace(f.inputs[fieldClient].Value())
	d.Due = strings.TrimSpace(f.inputs[fieldDue].Value())
	d.Type = crm.TaskType(crm.TaskTypes[f.kind])
	return d
}

func (f taskForm) view() string {
	if f.quick {
		return titleStyle.Render("Add Quick Interaction") + "\n" + f.inputs[fieldTitle].View() +
			"\n\n" + mutedStyle.Render("enter save • esc cancel")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Add New Task") + "\n")
	labels := [fieldType]string{"Task", "Client", "Due"}
	for i, in := range f.inputs {
		b.WriteString(facetLabel.Render(labels[i]) + " " + in.View() + "\n")
	}
	b.WriteString(facetLabel.Render("Type") + " ")
	for i, t := range crm.TaskTypes {
		style := chip
		if i == f.kind {
			style = chipOn
			if f.focus == fieldType {
				style = style.Inherit(chipFocus)
			}
		}
		b.WriteString(style.Render(t) + " ")
	}
	b.WriteString("\n\n" + mutedStyle.Render("tab next field • ←/→ type • enter save • esc cancel"))
	return b.String()
}
