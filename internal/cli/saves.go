package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aretw0/fable/pkg/ports"
)

// ListSaves prints one line per save in store: name, story, node and age.
// Unreadable saves are listed with their error instead.
func ListSaves(ctx context.Context, store ports.SaveStore, out io.Writer) error {
	names, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		printSystemMessage(out, "No saves found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTORY\tNODE\tSAVED")
	for _, name := range names {
		save, err := store.Load(ctx, name)
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t%v\n", name, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, orDash(save.StoryID),
			orDash(save.Snapshot.CurrentNodeID), save.SavedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
