// Package cmd wires the command-line entrypoints.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"library-management/config"
	"library-management/console"
	"library-management/library"
	"library-management/mail"
)

var rootCmd = &cobra.Command{
	Use:   "library",
	Short: "Console-based library management system",
	Long: `An interactive library manager: catalog, members, administrators,
and borrow/return tracking over a local SQLite database.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		logger := newLogger()

		db, err := library.NewDatabase(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		var mailer library.Mailer
		if cfg.MailEnabled() {
			mailer = mail.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port,
				cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, logger)
		} else {
			mailer = &mail.Console{Out: os.Stdout}
		}

		svc := library.NewService(db, library.Options{
			Mailer:     mailer,
			Logger:     logger,
			BcryptCost: cfg.Auth.BcryptCost,
		})

		console.New(svc, logger).Run()
		return nil
	},
}

// newLogger writes structured logs to stderr so they never interleave with
// the menu text on stdout.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// Execute runs the root command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
