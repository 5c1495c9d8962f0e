// cmd_decode.go - `bpetok decode`: reads lines of token ids from stdin,
// writes one diagnostic line of reconstructed text per input line. Not
// named by spec §6.2, which only specifies the encode direction; added
// so the CLI can exercise the decoder too.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bytepair/tokenizer/internal/registry"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode stdin lines of token ids to text (default vocabulary: r50k)",
		RunE: func(cmd *cobra.Command, args []string) error {
			vocabName, _ := cmd.Flags().GetString("vocab")
			setupLogging()
			return runDecode(cmd.InOrStdin(), cmd.OutOrStdout(), vocabName)
		},
	}
	cmd.Flags().String("vocab", "r50k", "vocabulary: r50k, p50k, cl100k, o200k")
	return cmd
}

func runDecode(in io.Reader, out io.Writer, vocabName string) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()

		ids, err := parseIDs(line)
		if err != nil {
			return err
		}

		text, err := decodeIDs(vocabName, ids)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "[INFO][DECODE]: %s -> %q\n", formatIDs(ids), text)
	}
	return scanner.Err()
}

func parseIDs(line string) ([]uint64, error) {
	line = strings.Trim(line, "[] \t")
	if line == "" {
		return nil, nil
	}

	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' '
	})

	ids := make([]uint64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q: %w", f, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func decodeIDs(vocabName string, ids []uint64) (string, error) {
	switch vocabName {
	case "r50k":
		tok, err := registry.R50k()
		if err != nil {
			return "", err
		}
		b, errs := tok.Decode(narrow16(ids))
		logUnknownIDs(errs)
		return string(b), nil
	case "p50k":
		tok, err := registry.P50k()
		if err != nil {
			return "", err
		}
		b, errs := tok.Decode(narrow16(ids))
		logUnknownIDs(errs)
		return string(b), nil
	case "cl100k":
		tok, err := registry.Cl100k()
		if err != nil {
			return "", err
		}
		b, errs := tok.Decode(narrow32(ids))
		logUnknownIDs(errs)
		return string(b), nil
	case "o200k":
		tok, err := registry.O200k()
		if err != nil {
			return "", err
		}
		b, errs := tok.Decode(narrow32(ids))
		logUnknownIDs(errs)
		return string(b), nil
	default:
		return "", fmt.Errorf("unknown vocabulary %q", vocabName)
	}
}

func logUnknownIDs(errs []error) {
	for _, err := range errs {
		slog.Warn("decode", "error", err)
	}
}

func narrow16(ids []uint64) []uint16 {
	out := make([]uint16, len(ids))
	for i, id := range ids {
		out[i] = uint16(id)
	}
	return out
}

func narrow32(ids []uint64) []uint32 {
	out := make([]uint32, len(ids))
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}
