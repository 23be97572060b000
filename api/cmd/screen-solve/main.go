// screen-solve answers screenshots of quiz questions through a multimodal LLM.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"screen-solve/api/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errExit signals a non-zero exit after the command already reported its error.
var errExit = errors.New("exit")

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "screen-solve: %v\n", err)
		}
		return 1
	}
	return 0
}

// app carries state resolved by the root command for its subcommands.
type app struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "screen-solve",
		Short:         "Answer screenshots of questions with a multimodal LLM",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().String("config", os.Getenv("CONFIG_FILE"), "Optional YAML config file")
	root.PersistentFlags().String("log-format", "json", "Log format: json or text")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("log-format")
		level, _ := cmd.Flags().GetString("log-level")
		if err := setupLogger(stderr, format, level); err != nil {
			return err
		}
		config.LoadDotEnv()
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
		return nil
	}
	root.AddCommand(
		newServeCmd(a),
		newBotCmd(a),
		newSolveCmd(a),
	)
	return root
}

func setupLogger(w io.Writer, format, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "json":
		slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))
	case "text":
		slog.SetDefault(slog.New(slog.NewTextHandler(w, opts)))
	default:
		return fmt.Errorf("invalid --log-format %q: must be json or text", format)
	}
	return nil
}
