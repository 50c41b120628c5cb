package ui

import (
	"fmt"
	"strings"

	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/store"
)

// listView renders the list state machine: spinner, error, empty state or
// the two groups. The cursor indexes the display order.
func (a *App) listView(st store.State) string {
	switch {
	case st.Loading:
		return a.spin.View() + " " + output.LoadingText
	case st.Error != "":
		return alertStyle.Render("Error: " + st.Error)
	case len(st.Tasks) == 0:
		return output.EmptyTitle + "\n" + mutedStyle.Render(output.EmptyHint)
	}

	pending, completed := store.Partition(st.Tasks)
	var b strings.Builder
	row := 0
	section := func(title string, tasks []service.Task) {
		if len(tasks) == 0 {
			return
		}
		if row > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d)", title, len(tasks))))
		for _, t := range tasks {
			b.WriteString("\n")
			b.WriteString(a.itemView(t, row == a.cursor))
			row++
		}
	}
	section(output.PendingTitle, pending)
	section(output.CompletedTitle, completed)
	return b.String()
}

// itemView renders one row. Rows being deleted are greyed out.
func (a *App) itemView(t service.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}
	title := output.NormalizeTitle(t.Title)
	line := output.Checkbox(t.Completed) + " " + title

	switch {
	case a.deleting[t.ID]:
		line = mutedStyle.Render(line + "  deleting...")
	case t.Completed:
		line = output.Checkbox(true) + " " + doneStyle.Render(title)
	}

	if desc := strings.TrimSpace(t.Description); desc != "" {
		line += "\n      " + mutedStyle.Render(strings.ReplaceAll(desc, "\n", " "))
	}
	return cursor + line
}
