package main

import (
	"fmt"

	"github.com/brimdata/peekio"
	"github.com/brimdata/peekio/sniff"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var detectCmd = &cobra.Command{
	Use:   "detect FILE...",
	Short: "Detect the compression framing of each file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		for _, path := range args {
			f, err := open(path)
			if err != nil {
				return err
			}
			format, err := sniff.Detect(peekio.NewBufReader(f))
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Debug("detected", zap.String("path", path), zap.Stringer("format", format))
			fmt.Printf("%s: %s\n", path, format)
		}
		return nil
	},
}
