// Command vidprogress lists or forgets saved watch progress.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/vidctl/internal/config"
	"github.com/llehouerou/vidctl/internal/errmsg"
	"github.com/llehouerou/vidctl/internal/state"
	"github.com/llehouerou/vidctl/internal/ui/playerbar"
	"github.com/llehouerou/vidctl/internal/ui/render"
)

func main() {
	limit := flag.Int("limit", 20, "rows to show, 0 for all")
	forget := flag.String("delete", "", "forget the progress of this key")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fail(errmsg.OpInitialize, err)
	}

	var store *state.Manager
	if cfg.State.Path != "" {
		store, err = state.OpenPath(cfg.State.Path)
	} else {
		store, err = state.Open()
	}
	if err != nil {
		fail(errmsg.OpProgressLoad, err)
	}
	defer store.Close()

	if *forget != "" {
		if err := store.DeleteProgress(*forget); err != nil {
			fail(errmsg.OpProgressDelete, err)
		}
		fmt.Printf("forgot %s\n", *forget)
		return
	}

	rows, err := store.ListProgress(*limit)
	if err != nil {
		fail(errmsg.OpProgressLoad, err)
	}
	printProgress(os.Stdout, rows, time.Now())
}

func fail(op errmsg.Op, err error) {
	fmt.Fprintln(os.Stderr, errmsg.Format(op, err))
	os.Exit(1)
}

// printProgress writes one aligned row per item.
func printProgress(w io.Writer, rows []state.Progress, now time.Time) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no saved progress")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tPOSITION\tWATCHED\tQUALITY\tSPEED\tUPDATED")
	for _, p := range rows {
		quality := p.Quality
		if quality == "" {
			quality = "-"
		}
		fmt.Fprintf(tw, "%s\t%s / %s\t%s\t%s\t%s\t%s\n",
			render.Truncate(p.MediaKey, 60),
			render.Duration(p.Position),
			render.Duration(p.Duration),
			watched(p),
			quality,
			playerbar.FormatSpeed(p.Speed),
			humanize.RelTime(p.UpdatedAt, now, "ago", "from now"),
		)
	}
	_ = tw.Flush()
}

// watched is the share of the item already seen.
func watched(p state.Progress) string {
	if p.Duration <= 0 {
		return "-"
	}
	return humanize.FtoaWithDigits(100*float64(p.Position)/float64(p.Duration), 1) + "%"
}
