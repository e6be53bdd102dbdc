package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show covexport version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			name := color.New(color.FgCyan, color.Bold).Sprint("covexport")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s %s/%s)\n", name, Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
