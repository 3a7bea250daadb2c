package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/catalog-browser/internal/pager"
	"github.com/donaldgifford/catalog-browser/pkg/logger"
)

func browseCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through the catalog in the terminal",
		Long: "Load the first page of the catalog, then load one more page each time\n" +
			"Enter is pressed, the terminal counterpart of scrolling to the end of\n" +
			"the grid. Type q to stop.",
		Example: `  # Page through the public catalog
  catalog-browser browse

  # Load every product from a local catalog as JSON
  catalog-browser browse --all --catalog-url http://localhost:8089 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctrl := pager.New(newCatalogClient(cfg),
				pager.WithPageSize(cfg.Catalog.PageSize),
				pager.WithLogger(logger.New(cfg.Logging.Level, cfg.Logging.Format)),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			b := &browser{
				ctrl:   ctrl,
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
				json:   jsonOutput(),
			}
			if all {
				return b.runAll(ctx)
			}
			return b.runInteractive(ctx, cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "load every page without prompting")

	return cmd
}

// browser prints the products a controller accumulates, each product once.
type browser struct {
	ctrl   *pager.Controller
	out    io.Writer
	errOut io.Writer
	json   bool

	printed int
}

// runAll loads pages until the catalog is exhausted, firing the next load
// as soon as the previous one settles.
func (b *browser) runAll(ctx context.Context) error {
	if err := b.ctrl.Initialize(ctx); err != nil {
		return err
	}

	trigger := pager.NewTrigger(b.ctrl)
	for b.ctrl.HasMore() {
		if err := trigger.Fire(ctx); err != nil {
			return err
		}
	}

	if b.json {
		return outputJSON(b.out, b.ctrl.Snapshot())
	}
	if err := b.flush(); err != nil {
		return err
	}
	return b.summary()
}

// runInteractive treats every line read from in as the end of the list
// coming into view.
func (b *browser) runInteractive(ctx context.Context, in io.Reader) error {
	if err := b.ctrl.Initialize(ctx); err != nil {
		return err
	}
	if err := b.flush(); err != nil {
		return err
	}
	if !b.ctrl.HasMore() {
		return b.summary()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var flushErr error
	trigger := pager.NewTrigger(b.ctrl,
		pager.OnError(func(err error) {
			fmt.Fprintf(b.errOut, "error: %v (press Enter to retry)\n", err)
		}),
		pager.OnLoad(func() {
			if flushErr = b.flush(); flushErr != nil {
				cancel()
				return
			}
			if !b.ctrl.HasMore() {
				cancel()
				return
			}
			b.prompt()
		}),
	)

	b.prompt()
	err := trigger.Watch(ctx, lineEvents(ctx, in))
	if flushErr != nil {
		return flushErr
	}
	if err != nil && ctx.Err() != nil && b.ctrl.HasMore() {
		// Interrupted before the catalog was exhausted.
		fmt.Fprintln(b.errOut)
	}
	return b.summary()
}

// flush prints the products loaded since the last flush.
func (b *browser) flush() error {
	products := b.ctrl.Snapshot().Since(b.printed)
	if len(products) == 0 {
		return nil
	}

	var err error
	if b.json {
		err = outputJSON(b.out, products)
	} else {
		err = printProductsTable(b.out, products, b.printed == 0)
	}
	b.printed += len(products)
	return err
}

func (b *browser) prompt() {
	if b.json {
		return
	}
	fmt.Fprintf(b.errOut, "-- %d of %d loaded, Enter for more, q to quit --\n",
		b.printed, b.ctrl.Total())
}

func (b *browser) summary() error {
	if b.json {
		return nil
	}
	_, err := fmt.Fprintf(b.out, "\nShowing %d of %d products\n", b.printed, b.ctrl.Total())
	return err
}

// lineEvents emits one event per input line until EOF, a line reading "q",
// or ctx is done.
func lineEvents(ctx context.Context, in io.Reader) <-chan struct{} {
	events := make(chan struct{})
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if strings.EqualFold(strings.TrimSpace(scanner.Text()), "q") {
				return
			}
			select {
			case events <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events
}
