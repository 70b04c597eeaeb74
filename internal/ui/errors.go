package ui

import (
	"fmt"
	"strings"

	"apv/internal/config"
	"apv/internal/domain"
	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ErrorViewer displays the error entries of an evaluation record in an
// interactive TUI.
type ErrorViewer struct {
	config *config.Config
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config) *ErrorViewer {
	return &ErrorViewer{config: cfg}
}

// phaseEntry ties an error entry to the phase it was observed in.
type phaseEntry struct {
	phase domain.Phase
	entry domain.ErrorEntry
}

// View displays the record's error entries. Entries from both phases are
// shown, pre first, in their original order.
func (ev *ErrorViewer) View(record *domain.EvaluationRecord) error {
	var entries []phaseEntry
	for _, e := range record.Pre.Final.Entries {
		entries = append(entries, phaseEntry{phase: domain.PhasePre, entry: e})
	}
	for _, e := range record.Post.Final.Entries {
		entries = append(entries, phaseEntry{phase: domain.PhasePost, entry: e})
	}

	if len(entries) == 0 {
		color.Green("✓ No errors recorded in either phase!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, pe := range entries {
		label := fmt.Sprintf("[yellow]%d.[white] [%s] %s", i+1, pe.phase, entryTitle(pe.entry))
		list.AddItem(label, "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	headerView.SetText(fmt.Sprintf(
		" Evaluation Errors (%d pre, %d post) | ↑↓ navigate, → details, ← back, Ctrl+C exit ",
		len(record.Pre.Final.Entries), len(record.Post.Final.Entries)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(entries) {
			detailsView.SetText(ev.formatEntry(entries[index]))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatEntry formats one error entry using tview color tags.
func (ev *ErrorViewer) formatEntry(pe phaseEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Phase: %s[white]\n\n", pe.phase)
	fmt.Fprintf(&b, "[cyan]Classification:[white] %s\n", pe.entry.Classification)
	if pe.entry.Module != "" {
		fmt.Fprintf(&b, "[cyan]Missing module:[white] %s\n", pe.entry.Module)
	}
	fmt.Fprintf(&b, "\n[yellow]Message:[white]\n%s\n", pe.entry.Message)

	return b.String()
}

func entryTitle(entry domain.ErrorEntry) string {
	if entry.Module != "" {
		return fmt.Sprintf("missing module %q", entry.Module)
	}
	title := entry.Message
	if len(title) > 60 {
		title = title[:57] + "..."
	}
	return title
}
