// Package main implements termdrive's CLI front end: a thin consumer of
// pkg/termdrive that launches a command under a PTY, runs a tapescript
// file against it, and prints whatever screenshots the script captured.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/termdrive/internal/config"
	"github.com/Gaurav-Gosain/termdrive/internal/tapescript"
	"github.com/Gaurav-Gosain/termdrive/pkg/termdrive"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cols    int
	rows    int
	cwd     string
	debug   bool
	timeout time.Duration
)

// userCfg holds on-disk defaults (preferred shell, timeout overrides) for
// invocations that don't name a command explicitly or don't pass --timeout.
var userCfg *config.UserConfig

func main() {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termdrive: %v; using built-in defaults\n", err)
		cfg = config.DefaultConfig()
	}
	userCfg = cfg

	defaultTimeout := 5 * time.Second
	if userCfg.Timeouts.WaitForTextMS > 0 {
		defaultTimeout = time.Duration(userCfg.Timeouts.WaitForTextMS) * time.Millisecond
	}

	rootCmd := &cobra.Command{
		Use:   "termdrive",
		Short: "Drive terminal programs headlessly under a PTY",
		Long: `termdrive automates terminal programs the way a browser driver
automates web pages: it spawns a command under a pseudo-terminal, feeds an
in-process terminal emulator, and lets a script wait for text, click into
rendered content, and type or press keys, all without an attached display.`,
		Example: `  # Run a tapescript file against bash and print every screenshot
  termdrive exec session.tape -- bash

  # Launch an interactive program and print its immediate screen
  termdrive text -- cat`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().IntVar(&cols, "cols", 80, "terminal width")
	rootCmd.PersistentFlags().IntVar(&rows, "rows", 24, "terminal height")
	rootCmd.PersistentFlags().StringVar(&cwd, "cwd", "", "working directory for the launched command")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log dropped emulator-feed errors")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "default wait timeout")

	rootCmd.AddCommand(
		newExecCmd(),
		newTextCmd(),
		newWaitCmd(),
		newConfigCmd(),
	)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\ncommit: %s\nbuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	if !debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "termdrive: ", log.LstdFlags)
}

func launch(command string, args []string) (*termdrive.Session, error) {
	return termdrive.New(command,
		termdrive.WithArgs(args...),
		termdrive.WithSize(cols, rows),
		termdrive.WithCwd(cwd),
		termdrive.WithLogger(newLogger()),
	)
}

// splitCommand separates a leading "--" from the command it introduces. With
// no "--" and no bare argument at all, it falls back to the user config's
// preferred shell; a "--" with nothing after it is always an error, since the
// caller explicitly opted out of the fallback.
func splitCommand(args []string) (string, []string, error) {
	for i, a := range args {
		if a == "--" {
			rest := args[i+1:]
			if len(rest) == 0 {
				return "", nil, fmt.Errorf("no command given after --")
			}
			return rest[0], rest[1:], nil
		}
	}
	if len(args) == 0 {
		if userCfg != nil && userCfg.Shell.Command != "" {
			return userCfg.Shell.Command, userCfg.Shell.Args, nil
		}
		return "", nil, fmt.Errorf("no command given; pass one after --")
	}
	return args[0], args[1:], nil
}

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize the termdrive configuration file",
	}
	c.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefaultConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	c.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path without creating it",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return c
}

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <script.tape> -- <command> [args...]",
		Short: "Run a tapescript file against a launched command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptPath := args[0]
			command, cmdArgs, err := splitCommand(args[1:])
			if err != nil {
				return err
			}

			f, err := os.Open(scriptPath)
			if err != nil {
				return fmt.Errorf("open tapescript: %w", err)
			}
			defer func() { _ = f.Close() }()

			script, err := tapescript.Parse(f)
			if err != nil {
				return err
			}

			session, err := launch(command, cmdArgs)
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			results, err := tapescript.Run(script, session)
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "--- screenshot (line %d) ---%s\n", r.Line, r.Text)
			}
			return err
		},
	}
}

func newTextCmd() *cobra.Command {
	var trimEnd, showCursor bool
	c := &cobra.Command{
		Use:   "text -- [command] [args...]",
		Short: "Launch a command and print its immediate screen text",
		Long: `Launch a command and print its immediate screen text.

With no command given, the configured default shell is launched instead
(see "termdrive config init").`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cmdArgs, err := splitCommand(args)
			if err != nil {
				return err
			}
			session, err := launch(command, cmdArgs)
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			text, err := session.Text(termdrive.TextOptions{Immediate: true, TrimEnd: trimEnd, ShowCursor: showCursor})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	c.Flags().BoolVar(&trimEnd, "trim-end", true, "drop trailing blank lines")
	c.Flags().BoolVar(&showCursor, "show-cursor", false, "bracket the cursor's cell in the output, e.g. ab[c]d")
	return c
}

func newWaitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "wait <pattern> -- [command] [args...]",
		Short: "Launch a command and wait for pattern to appear on screen",
		Long: `Launch a command and wait for pattern to appear on screen.

With no command given, the configured default shell is launched instead
(see "termdrive config init").`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pat, err := termdrive.ParsePattern(args[0])
			if err != nil {
				return fmt.Errorf("invalid pattern: %w", err)
			}
			command, cmdArgs, err := splitCommand(args[1:])
			if err != nil {
				return err
			}
			session, err := launch(command, cmdArgs)
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			text, err := session.WaitForText(pat, timeout)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	return c
}
