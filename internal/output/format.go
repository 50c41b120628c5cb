// Package output provides text formatters for the task list.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/service"
	"taskboard/internal/store"
)

const (
	// ListSeparator is the separator line under section titles.
	ListSeparator = "------------"

	// Messages of the list view states.
	LoadingText    = "Loading tasks..."
	EmptyTitle     = "No tasks yet"
	EmptyHint      = "Add your first task to get started!"
	PendingTitle   = "Pending Tasks"
	CompletedTitle = "Completed Tasks"
)

// WriteList renders the list view for st:
// loading, else error, else empty state, else the pending and completed
// sections (each only when non-empty). Tasks are numbered in display order.
func WriteList(w io.Writer, st store.State) {
	switch {
	case st.Loading:
		fmt.Fprintln(w, LoadingText)
	case st.Error != "":
		fmt.Fprintf(w, "Error: %s\n", st.Error)
	case len(st.Tasks) == 0:
		fmt.Fprintln(w, EmptyTitle)
		fmt.Fprintln(w, EmptyHint)
	default:
		pending, completed := store.Partition(st.Tasks)
		num := 1
		if len(pending) > 0 {
			FormatSectionHeader(w, PendingTitle, len(pending))
			for _, t := range pending {
				FormatTask(w, num, t)
				num++
			}
		}
		if len(completed) > 0 {
			if len(pending) > 0 {
				fmt.Fprintln(w)
			}
			FormatSectionHeader(w, CompletedTitle, len(completed))
			for _, t := range completed {
				FormatTask(w, num, t)
				num++
			}
		}
	}
}

// WriteSummary writes the header counts line.
func WriteSummary(w io.Writer, c store.Counts) {
	fmt.Fprintf(w, "Pending: %d  Completed: %d  Total: %d\n", c.Pending, c.Completed, c.Total)
}

// FormatSectionHeader formats a group title with its count.
func FormatSectionHeader(w io.Writer, title string, n int) {
	fmt.Fprintf(w, "%s (%d)\n", title, n)
	fmt.Fprintln(w, ListSeparator)
}

// FormatTask formats a task row.
// Format: "{N:>4}  [ ] {TITLE}\n", then the description indented on its own
// line when there is one.
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(task.Completed), NormalizeTitle(task.Title))
	if desc := normalizeDescription(task.Description); desc != "" {
		fmt.Fprintf(w, "          %s\n", desc)
	}
}

// Checkbox renders the completion flag.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = flatten(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func normalizeDescription(desc string) string {
	return strings.TrimSpace(flatten(desc))
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
