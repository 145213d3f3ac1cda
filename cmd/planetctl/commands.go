package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"planets-catalog/internal/app"
	"planets-catalog/internal/auth"
	"planets-catalog/internal/planet/seed"
	"planets-catalog/internal/shared/config"
	"planets-catalog/internal/shared/logger"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "planetctl",
		Short: "Operator tool for the planets catalog",
		Long: `planetctl manages the planets catalog outside the HTTP API.
It reads the same environment (and .env file) as the server.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return err
			}
			// Logs go to stderr so command output stays pipeable.
			slog.SetDefault(logger.New(os.Stderr, config.GlobalConfig.Logging))
			return nil
		},
	}

	root.AddCommand(newMigrateCmd(), newSeedCmd(), newTokenCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), config.GlobalConfig)
			if err != nil {
				return err
			}
			defer a.Close()

			applied, err := a.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create planets from a YAML catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := seed.LoadFile(file)
			if err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), config.GlobalConfig)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.Migrate(cmd.Context()); err != nil {
				return err
			}

			result, err := seed.Run(cmd.Context(), a.Service, catalog, slog.Default())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range result.Skipped {
				fmt.Fprintf(out, "skipped #%d %q: %v\n", s.Index, s.Name, s.Err)
			}
			for _, name := range result.DroppedAtmospheres {
				fmt.Fprintf(out, "created %q without its invalid atmosphere\n", name)
			}
			fmt.Fprintf(out, "created %d, skipped %d\n", len(result.Created), len(result.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "catalog.yaml", "YAML catalog to load")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed API token for catalog writes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := auth.NewTokenManager(config.GlobalConfig.Auth)
			if err != nil {
				return err
			}

			token, err := tokens.Generate(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Token subject, e.g. the operator or service name")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default JWT_EXPIRATION_HOURS)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
