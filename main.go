package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathakanu/phtReminder/internal/bot"
	"github.com/pathakanu/phtReminder/internal/dashboard"
	"github.com/pathakanu/phtReminder/internal/logging"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "phtReminder:", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	var envFile string

	return &cli.Command{
		Name:    "phtReminder",
		Usage:   "Interval reminders on Philippine Standard Time",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "dotenv file loaded before reading the environment",
				Value:       ".env",
				Destination: &envFile,
			},
		},
		Commands: []*cli.Command{
			cmdServe(&envFile),
			cmdDashboard(&envFile),
			cmdHistory(&envFile),
			cmdClearHistory(&envFile),
		},
		DefaultCommand: "serve",
	}
}

func cmdServe(envFile *string) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the reminder scheduler and the HTTP API",
		Action: func(ctx context.Context, _ *cli.Command) error {
			a, err := newApp(ctx, *envFile)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.bot.StartScheduler(ctx); err != nil {
				return goerr.Wrap(err, "scheduler start")
			}

			server := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           a.bot.Handler(a.broker),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Infow("server starting", "port", a.cfg.Port)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			return waitForShutdown(ctx, errCh, server, a.bot, a.logger)
		},
	}
}

func cmdDashboard(envFile *string) *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Run the reminder scheduler with a terminal dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "where logs go while the dashboard owns the terminal",
				Value: "phtReminder.log",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := newApp(ctx, *envFile, c.String("log-file"))
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.bot.StartScheduler(ctx); err != nil {
				return goerr.Wrap(err, "scheduler start")
			}
			defer a.bot.StopScheduler()

			return dashboard.Run(ctx, a.bot)
		},
	}
}

func cmdHistory(envFile *string) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Print the stored reminder history, newest first",
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := newApp(ctx, *envFile)
			if err != nil {
				return err
			}
			defer a.Close()

			history := a.bot.History()
			if len(history) == 0 {
				fmt.Fprintln(c.Root().Writer, "No reminders yet.")
				return nil
			}
			for _, r := range history {
				fmt.Fprintf(c.Root().Writer, "%-9s %-6s %s\n", r.Time, r.Type, r.Message)
			}
			return nil
		},
	}
}

func cmdClearHistory(envFile *string) *cli.Command {
	var yes bool

	return &cli.Command{
		Name:  "clear-history",
		Usage: "Delete every stored reminder",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Usage:       "confirm the deletion",
				Destination: &yes,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := newApp(ctx, *envFile)
			if err != nil {
				return err
			}
			defer a.Close()

			n := len(a.bot.History())
			if err := a.bot.ClearHistory(ctx, yes); err != nil {
				return goerr.Wrap(err, "pass --yes to clear the history", goerr.V("entries", n))
			}
			fmt.Fprintf(c.Root().Writer, "Cleared %d reminders.\n", n)
			return nil
		},
	}
}

func waitForShutdown(ctx context.Context, errCh <-chan error, server *http.Server, reminderBot *bot.Bot, logger *zap.SugaredLogger) error {
	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		logger.Errorw("server error", logging.ErrorFields(serveErr)...)
	}
	logger.Infow("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("server shutdown error", "error", err)
	}
	reminderBot.StopScheduler()
	return serveErr
}
