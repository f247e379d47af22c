package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/brimdata/peekio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var headBytes int

var headCmd = &cobra.Command{
	Use:   "head FILE",
	Short: "Hex dump the first bytes of a stream via a peek session",
	Long: `
head dumps the first bytes of a stream by reading through a peek cursor,
leaving the read cursor untouched. Useful for eyeballing magic bytes on a
pipe without eating them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		f, err := open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r := peekio.NewBufReader(f)
		c := r.Peek()
		defer c.Close()
		buf := make([]byte, headBytes)
		n, err := c.ReadFull(buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return err
		}
		logger.Debug("peeked", zap.String("path", args[0]), zap.Int("bytes", n))
		fmt.Print(hex.Dump(buf[:n]))
		return nil
	},
}

func init() {
	headCmd.Flags().IntVarP(&headBytes, "bytes", "c", 64, "number of bytes to peek")
}
