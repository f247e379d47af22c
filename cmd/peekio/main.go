// Command peekio inspects byte streams: it detects compression framings by
// their magic bytes, transparently decompresses them, and dumps lookahead
// bytes without consuming them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  *zap.Logger

	rootCmd = &cobra.Command{
		Use:           "peekio",
		Short:         "Inspect byte streams without consuming them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger = zap.NewNop()
			}
			return err
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(headCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "peekio:", err)
		os.Exit(1)
	}
}

// open returns the named file, or stdin for "-".
func open(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}
