// cmd_encode.go - `bpetok encode`: reads lines from stdin, writes one
// diagnostic line of token ids per input line.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bytepair/tokenizer/internal/registry"
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode stdin lines to token ids (default vocabulary: r50k)",
		RunE: func(cmd *cobra.Command, args []string) error {
			vocabName, _ := cmd.Flags().GetString("vocab")
			setupLogging()
			return runEncode(cmd.InOrStdin(), cmd.OutOrStdout(), vocabName)
		},
	}
	cmd.Flags().String("vocab", "r50k", "vocabulary: r50k, p50k, cl100k, o200k")
	return cmd
}

func runEncode(in io.Reader, out io.Writer, vocabName string) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()

		ids, err := encodeLine(vocabName, line)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "[INFO][ENCODE]: %q -> %s\n", line, formatIDs(ids))
	}
	return scanner.Err()
}

// encodeLine dispatches to the tokenizer for the named vocabulary and
// returns the ids as a uniform []uint64 for display, since r50k/p50k use
// 16-bit ids and cl100k/o200k use 32-bit ids.
func encodeLine(vocabName, line string) ([]uint64, error) {
	switch vocabName {
	case "r50k":
		tok, err := registry.R50k()
		if err != nil {
			return nil, err
		}
		return widen16(tok.Encode([]byte(line))), nil
	case "p50k":
		tok, err := registry.P50k()
		if err != nil {
			return nil, err
		}
		return widen16(tok.Encode([]byte(line))), nil
	case "cl100k":
		tok, err := registry.Cl100k()
		if err != nil {
			return nil, err
		}
		return widen32(tok.Encode([]byte(line))), nil
	case "o200k":
		tok, err := registry.O200k()
		if err != nil {
			return nil, err
		}
		return widen32(tok.Encode([]byte(line))), nil
	default:
		return nil, fmt.Errorf("unknown vocabulary %q", vocabName)
	}
}

func widen16(ids []uint16) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}

func widen32(ids []uint32) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}

func formatIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
