// Package main provides the layr binary entry point.
// Layr turns natural-language project descriptions into structured
// plans through interchangeable AI backends.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "layr"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		workdir  string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "AI project planning tool",
		Long: `Layr turns a natural-language project description into a structured
project plan through interchangeable AI backends.

It provides:
- Plan generation via Groq, DeepSeek, OpenAI o3, Grok, Kimi, or local Ollama
- Section-level plan refinement
- Plan version history with retention
- Scaffolding of a plan's file structure into the workspace`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&workdir, "dir", "C", ".", "Working directory")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		configureLogging(logLevel)
	}

	cmd.AddCommand(
		planCmd(&workdir),
		refineCmd(&workdir),
		historyCmd(&workdir),
		providersCmd(&workdir),
		validateKeyCmd(&workdir),
		scaffoldCmd(&workdir),
		estimateCmd(),
		templatesCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
