package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bethropolis/llmcontext/internal/app"
	"github.com/bethropolis/llmcontext/internal/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llmcontext [directory...]",
		Short: "Aggregate a directory tree into one text file for LLM context",
		Long: `llmcontext walks one or more directories and writes every file that is not
excluded by .gitignore or .llmignore rules into a single output file.

Rule files are honoured at every depth: a rule in a deeper directory overrides
one further up, a later line overrides an earlier one, and ignored directories
are never entered.`,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), cmd.Flags(), args)
			if err != nil {
				return err
			}
			application, err := app.New(cfg)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
