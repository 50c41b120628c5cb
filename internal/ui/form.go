package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/service"
	"taskboard/internal/store"
)

// AlertEmptyTitle is shown when the form is submitted without a title.
const AlertEmptyTitle = "Please enter a task title"

const (
	fieldTitle = iota
	fieldDescription
)

// form is the add/edit form. target is nil in add mode.
type form struct {
	title       textinput.Model
	description textinput.Model
	focus       int
	target      *service.Task
	alert       string
	pending     int // sequence of the in-flight submit, 0 if none
}

func newForm(target *service.Task) *form {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200
	title.Prompt = "Title:       "

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 1000
	desc.Prompt = "Description: "

	if target != nil {
		title.SetValue(target.Title)
		desc.SetValue(target.Description)
	}

	f := &form{title: title, description: desc, target: target}
	f.setFocus(fieldTitle)
	return f
}

func (f *form) setFocus(field int) {
	f.focus = field
	if field == fieldTitle {
		f.title.Focus()
		f.description.Blur()
		return
	}
	f.title.Blur()
	f.description.Focus()
}

// clear empties both fields after a successful submit.
func (f *form) clear() {
	f.title.SetValue("")
	f.description.SetValue("")
	f.alert = ""
	f.setFocus(fieldTitle)
}

// request validates the fields and builds the create or update request.
// ok is false when the title is blank; the alert is set instead.
func (f *form) request() (req store.Request, ok bool) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		f.alert = AlertEmptyTitle
		return store.Request{}, false
	}
	f.alert = ""
	in := service.TaskInput{
		Title:       title,
		Description: strings.TrimSpace(f.description.Value()),
	}
	if f.target != nil {
		return store.Update(f.target.ID, in), true
	}
	return store.Create(in), true
}

// update forwards non-control keys to the focused field.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == fieldTitle {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	heading := "New task"
	if f.target != nil {
		heading = "Edit task"
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")
	b.WriteString(f.title.View())
	b.WriteString("\n")
	b.WriteString(f.description.View())
	if f.alert != "" {
		b.WriteString("\n")
		b.WriteString(alertStyle.Render(f.alert))
	}
	b.WriteString("\n")
	hint := "enter save · tab switch field · esc cancel"
	if f.pending != 0 {
		hint = "saving..."
	}
	b.WriteString(mutedStyle.Render(hint))
	return formStyle.Render(b.String())
}
