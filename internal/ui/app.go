// Package ui is the interactive terminal front end. It renders the shared
// store and dispatches its operations as bubbletea commands.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/store"
)

// resultMsg carries a finished backend call back to Update.
type resultMsg struct {
	res store.Result
	seq int
}

// dismissMsg fires when the error banner timer expires. gen identifies the
// error it was started for.
type dismissMsg struct {
	gen int
}

// App is the root model.
type App struct {
	ctx   context.Context
	store *store.Store
	log   *log.Logger

	dismissAfter time.Duration

	spin   spinner.Model
	cursor int

	// seq numbers dispatched requests so results can be matched to the form
	seq int

	// error banner bookkeeping
	shownErr string
	errGen   int

	// item state
	confirmID string
	deleting  map[string]bool

	// nil when the form is closed; form.target is the edit target
	form *form

	width int
}

// New creates the root model. logger may be nil.
func New(ctx context.Context, cfg *config.Config, st *store.Store, logger *log.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	dismiss := cfg.ErrorDismiss
	if dismiss <= 0 {
		dismiss = config.DefaultErrorDismiss
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = cursorStyle
	st.Subscribe(func(s store.State) {
		logger.Debug("state", "tasks", len(s.Tasks), "loading", s.Loading, "error", s.Error)
	})
	return &App{
		ctx:          ctx,
		store:        st,
		log:          logger,
		dismissAfter: dismiss,
		spin:         spin,
		deleting:     make(map[string]bool),
	}
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, st *store.Store, logger *log.Logger) error {
	program := tea.NewProgram(New(ctx, cfg, st, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Init fetches the list once.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.dispatch(store.Fetch()), a.spin.Tick)
}

// dispatch moves the store to pending and returns the command that runs the
// backend call.
func (a *App) dispatch(req store.Request) tea.Cmd {
	cmd, _ := a.dispatchSeq(req)
	return cmd
}

// dispatchSeq is dispatch that also returns the sequence number the result
// will carry.
func (a *App) dispatchSeq(req store.Request) (tea.Cmd, int) {
	a.store.Begin(req)
	a.syncError()
	a.seq++
	seq, ctx := a.seq, a.ctx
	return func() tea.Msg {
		return resultMsg{res: a.store.Execute(ctx, req), seq: seq}
	}, seq
}

// syncError starts the dismiss timer when the store's error changes to a
// new non-empty message. Any change invalidates the previous timer.
func (a *App) syncError() tea.Cmd {
	msg := a.store.State().Error
	if msg == a.shownErr {
		return nil
	}
	a.shownErr = msg
	a.errGen++
	if msg == "" {
		return nil
	}
	gen := a.errGen
	return tea.Tick(a.dismissAfter, func(time.Time) tea.Msg {
		return dismissMsg{gen: gen}
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case resultMsg:
		return a, a.finish(msg.res, msg.seq)

	case dismissMsg:
		if msg.gen == a.errGen {
			a.store.ClearError()
		}
		return a, a.syncError()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			return a, a.updateForm(msg)
		}
		if a.confirmID != "" {
			return a, a.updateConfirm(msg)
		}
		return a.updateList(msg)
	}

	if a.form != nil {
		return a, a.form.update(msg)
	}
	return a, nil
}

// finish applies a backend result and the view effects that depend on it.
func (a *App) finish(res store.Result, seq int) tea.Cmd {
	a.store.Finish(res)
	req := res.Request

	switch req.Op {
	case store.OpDelete:
		// Success removes the row; failure re-enables it.
		delete(a.deleting, req.ID)
	case store.OpCreate, store.OpUpdate:
		// Only the submission of the open form may close it.
		if a.form != nil && a.form.pending == seq {
			a.form.pending = 0
			if res.Fulfilled() {
				a.form.clear()
				a.closeForm()
			} else {
				a.log.Error("save task failed", "op", req.Op, "id", req.ID, "err", res.Err)
			}
		}
	}
	if !res.Fulfilled() {
		a.log.Debug("operation failed", "op", req.Op, "message", res.Message())
	}

	a.clampCursor()
	return a.syncError()
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := a.store.State()
	rows := store.DisplayOrder(st.Tasks)

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(rows)-1 {
			a.cursor++
		}
	case "a":
		if st.Loading {
			return a, nil
		}
		a.openForm(nil)
	case "r":
		return a, a.dispatch(store.Fetch())
	case "x":
		a.store.ClearError()
		return a, a.syncError()
	case " ", "e", "d":
		// Rows are hidden behind the spinner while loading.
		if st.Loading {
			return a, nil
		}
		task, ok := a.selected(rows)
		if !ok || a.deleting[task.ID] {
			return a, nil
		}
		switch msg.String() {
		case " ":
			return a, a.dispatch(store.Toggle(task.ID))
		case "e":
			a.openForm(&task)
		case "d":
			a.confirmID = task.ID
		}
	}
	return a, nil
}

// updateConfirm answers the delete prompt. Only y confirms.
func (a *App) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	id := a.confirmID
	a.confirmID = ""
	if msg.String() != "y" && msg.String() != "Y" {
		return nil
	}
	if _, ok := a.store.State().Find(id); !ok {
		return nil
	}
	a.deleting[id] = true
	return a.dispatch(store.Delete(id))
}

func (a *App) updateForm(msg tea.KeyMsg) tea.Cmd {
	f := a.form
	switch msg.String() {
	case "esc":
		a.closeForm()
		return nil
	case "tab", "shift+tab", "up", "down":
		if f.focus == fieldTitle {
			f.setFocus(fieldDescription)
		} else {
			f.setFocus(fieldTitle)
		}
		return nil
	case "enter":
		if f.pending != 0 {
			return nil
		}
		req, ok := f.request()
		if !ok {
			return nil
		}
		cmd, seq := a.dispatchSeq(req)
		f.pending = seq
		return cmd
	}
	return f.update(msg)
}

// openForm shows the form. A nil target opens it in add mode.
func (a *App) openForm(target *service.Task) {
	a.form = newForm(target)
}

// closeForm hides the form and drops the edit target.
func (a *App) closeForm() {
	a.form = nil
}

func (a *App) selected(rows []service.Task) (service.Task, bool) {
	if a.cursor < 0 || a.cursor >= len(rows) {
		return service.Task{}, false
	}
	return rows[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.store.State().Tasks)
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// View renders the header, the banner, the list and the form.
func (a *App) View() string {
	st := a.store.State()
	var b strings.Builder

	b.WriteString(a.header(st))
	b.WriteString("\n")
	if st.Error != "" {
		b.WriteString(bannerStyle.Render(st.Error + "  (x to dismiss)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.listView(st))

	if a.confirmID != "" {
		if t, ok := st.Find(a.confirmID); ok {
			b.WriteString("\n\n")
			b.WriteString(alertStyle.Render(confirmPrompt(t)))
		}
	}
	if a.form != nil {
		b.WriteString("\n")
		b.WriteString(a.form.view())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(a.helpLine(st)))
	b.WriteString("\n")
	return b.String()
}

func (a *App) header(st store.State) string {
	var sb strings.Builder
	output.WriteSummary(&sb, store.Count(st.Tasks))
	return titleStyle.Render("Taskboard") + "  " + countStyle.Render(strings.TrimSuffix(sb.String(), "\n"))
}

func (a *App) helpLine(st store.State) string {
	if a.form != nil {
		return ""
	}
	keys := "↑/↓ move · space toggle · e edit · d delete · r refresh · q quit"
	if !st.Loading {
		keys = "a add · " + keys
	}
	return keys
}

func confirmPrompt(t service.Task) string {
	return "Delete \"" + output.NormalizeTitle(t.Title) + "\"? (y/n)"
}
