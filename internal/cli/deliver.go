package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/artpar/ccol/internal/core"
	"github.com/artpar/ccol/internal/history"
	"github.com/artpar/ccol/internal/logging"
	"github.com/artpar/ccol/internal/logging/events"
)

// historyLimit caps the number of selections kept in the history database.
const historyLimit = 1000

const (
	copiedMessage    = "Command copied to clipboard:"
	notCopiedMessage = "Unable to copy command to clipboard:"
)

// deliver copies the selection to the clipboard, reports the outcome and
// records it. Clipboard and history failures are reported, never fatal.
func (rt *runtime) deliver(sel core.Selection) {
	copied := true
	if err := rt.writeClipboard(sel.Command); err != nil {
		logging.Error(fmt.Errorf("failed to copy command: %w", err))
		copied = false
	}

	report(rt.out, sel, copied)
	rt.record(sel, copied)
}

// report prints the outcome message, the label and the command.
func report(w io.Writer, sel core.Selection, copied bool) {
	message := copiedMessage
	if !copied {
		message = notCopiedMessage
	}

	title := color.New(color.Bold, color.FgBlue)
	label := color.New(color.Bold, color.FgMagenta)
	command := color.New(color.FgGreen)

	fmt.Fprintf(w, "\n\n%s\n\n%s\n\n%s\n\n\n",
		title.Sprint(message),
		label.Sprint(sel.Label),
		command.Sprint(sel.Command),
	)
}

// record stores the selection in the history database when enabled.
func (rt *runtime) record(sel core.Selection, copied bool) {
	if !rt.settings.History {
		return
	}

	store, err := rt.openHistory(rt.settings.HistoryFile)
	if err != nil {
		rt.historyFailed(err)
		return
	}
	defer store.Close()

	ctx := context.Background()
	id, err := store.Add(ctx, history.NewEntry(sel, copied, rt.settings.ConfigFile))
	if err != nil {
		rt.historyFailed(err)
		return
	}
	events.History.Recorded(id, sel.ID)

	if _, err := store.Prune(ctx, history.PruneOptions{KeepLast: historyLimit}); err != nil {
		rt.historyFailed(err)
	}
}

func (rt *runtime) historyFailed(err error) {
	logging.Error(fmt.Errorf("failed to record selection: %w", err))
	events.History.Error(err)
}
