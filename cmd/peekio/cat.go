package main

import (
	"fmt"
	"io"
	"os"

	"github.com/brimdata/peekio/sniff"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catCmd = &cobra.Command{
	Use:   "cat FILE",
	Short: "Decompress a file to stdout, sniffing its framing",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		f, err := open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r, format, err := sniff.NewReader(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		logger.Debug("decoding", zap.String("path", args[0]), zap.Stringer("format", format))
		_, err = io.Copy(os.Stdout, r)
		return err
	},
}
