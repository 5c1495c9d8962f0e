// cmd.go - root CLI setup.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bytepair/tokenizer/internal/config"
)

// appendEnvDocs appends an "Environment Variables" section to a
// command's usage text, in the teacher's style.
func appendEnvDocs(cmd *cobra.Command, envs []config.EnvVar) {
	if len(envs) == 0 {
		return
	}

	usage := "\nEnvironment Variables:\n"
	for _, e := range envs {
		usage += "      " + e.Name + "   " + e.Description + "\n"
	}
	cmd.SetUsageTemplate(cmd.UsageTemplate() + usage)
}

// newRootCmd builds the bpetok root command.
func newRootCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	root := &cobra.Command{
		Use:           "bpetok",
		Short:         "GPT-family byte-pair-encoding tokenizer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	envVars := config.AsMap()
	envs := []config.EnvVar{envVars["BPETOK_VOCAB_DIR"], envVars["BPETOK_LOG_LEVEL"]}

	encodeCmd := newEncodeCmd()
	decodeCmd := newDecodeCmd()
	appendEnvDocs(encodeCmd, envs)
	appendEnvDocs(decodeCmd, envs)

	root.AddCommand(encodeCmd, decodeCmd)
	return root
}

func setupLogging() {
	level := slog.LevelInfo
	_ = level.UnmarshalText([]byte(config.LogLevel()))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
