package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/oaiiae/addressbook/assistant"
	"github.com/oaiiae/addressbook/cli/api"
	"github.com/oaiiae/addressbook/cli/book"
	"github.com/oaiiae/addressbook/cli/logger"
)

// set at build time with -ldflags "-X main.version=..."
var (
	version  = "dev"
	revision = ""
	created  = ""
)

// Options for the CLI. Pass `--port` or set the `SERVICE_PORT` env var.
type Options struct {
	logger.Options
	api.ServerOptions
	api.RouterOptions
	book.SnapshotOptions
}

func main() {
	newCLI().Run()
}

func newCLI() humacli.CLI {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})

		hooks.OnStart(func() {
			defer close(stopped)
			logger := logger.New(&options.Options)
			if err := serve(ctx, options, logger); err != nil {
				logger.Error("server failed", "err", err)
				os.Exit(1)
			}
		})
		hooks.OnStop(func() {
			cancel()
			select {
			case <-stopped:
			case <-time.After(time.Minute):
			}
		})
	})

	cli.Root().Use = "addressbook"
	cli.Root().Version = version
	cli.Root().AddCommand(
		&cobra.Command{
			Use:   "assistant",
			Short: "Talk to the address book from the terminal",
			Args:  cobra.NoArgs,
			Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *Options) {
				logger := logger.NewWithOutput(&options.Options, cmd.ErrOrStderr())
				exitOnError(logger, talk(cmd.Context(), options, cmd.InOrStdin(), cmd.OutOrStdout(), logger))
			}),
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Merge contacts from a YAML file into the address book",
			Args:  cobra.ExactArgs(1),
			Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
				logger := logger.NewWithOutput(&options.Options, cmd.ErrOrStderr())
				f, err := os.Open(args[0])
				exitOnError(logger, err)
				defer f.Close()
				n, err := book.Import(&options.SnapshotOptions, f, logger)
				exitOnError(logger, err)
				logger.Info("contacts imported", "from", args[0], "records", n)
			}),
		},
		&cobra.Command{
			Use:   "export",
			Short: "Write the address book contacts to stdout as YAML",
			Args:  cobra.NoArgs,
			Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *Options) {
				logger := logger.NewWithOutput(&options.Options, cmd.ErrOrStderr())
				exitOnError(logger, book.Export(&options.SnapshotOptions, cmd.OutOrStdout(), logger))
			}),
		},
	)
	return cli
}

func serve(ctx context.Context, options *Options, logger *slog.Logger) error {
	store, err := book.Open(ctx, &options.SnapshotOptions, logger)
	if err != nil {
		return err
	}
	clk := clock.New()
	srv := api.NewServer(&options.ServerOptions,
		api.NewRouter(&options.RouterOptions, "Address Book", version, revision, created, store, clk, logger),
		logger,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("server closed")
		return nil
	})
	g.Go(func() error {
		return book.Autosave(ctx, &options.SnapshotOptions, store, clk, logger)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("could not shutdown the server", "err", err)
		}
		return nil
	})
	return g.Wait()
}

func talk(ctx context.Context, options *Options, in io.Reader, out io.Writer, logger *slog.Logger) error {
	b, err := book.Load(&options.SnapshotOptions, logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Welcome to the assistant bot!")
	bot := assistant.New(b, assistant.WithClock(clock.New()), assistant.WithLogger(logger))
	if err := bot.Run(ctx, in, out); err != nil {
		return err
	}
	return b.SaveToFile(options.Book)
}

func exitOnError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}
