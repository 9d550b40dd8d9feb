package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
	"github.com/praetorian-inc/rulebridge/pkg/serve"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as streaming server for IDE integration",
	Long: `Run rulebridge as a long-lived streaming server that accepts rule set
requests via stdin and writes responses to stdout using NDJSON format.

The process handles requests until stdin closes, a "close" request
arrives or SIGTERM is received. Logs go to stderr.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	generator := ruleset.NewGenerator(ruleset.WithLogger(slog.Default()))

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := serve.NewServer(generator, cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
