package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags "-X main.Version=..."
var Version = "0.1.0-dev"

func newRootCmd() *cobra.Command {
	root := newPushCmd()
	root.Version = Version
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(newIntakeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// main runs the root command. Any failure exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}
