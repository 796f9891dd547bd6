// Package main provides the CLI entrypoint for studypick.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/studypick/internal/classes"
	"github.com/verte-zerg/studypick/internal/clock"
	"github.com/verte-zerg/studypick/internal/config"
	"github.com/verte-zerg/studypick/internal/kv"
	"github.com/verte-zerg/studypick/internal/model"
	"github.com/verte-zerg/studypick/internal/report"
	"github.com/verte-zerg/studypick/internal/selector"
	"github.com/verte-zerg/studypick/internal/streaks"
	"github.com/verte-zerg/studypick/internal/tui"
)

var (
	dbPathFlag string

	addDate       string
	addConfidence int

	listWeights bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "studypick",
		Short:         "Pick what to study next and run a focused hour",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runStudyCmd,
	}
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "database path (default: $XDG_DATA_HOME/studypick/studypick.db)")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newPickCmd())
	rootCmd.AddCommand(newStreaksCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app bundles the stores shared by every command.
type app struct {
	cfg     model.Config
	db      *kv.SQLite
	classes *classes.Store
	streaks *streaks.Store
	clock   clock.Clock
}

func openApp(ctx context.Context) (*app, error) {
	config.LoadEnv()
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.Resolve(fileCfg)
	if dbPathFlag != "" {
		cfg.DBPath = dbPathFlag
	}

	db, err := kv.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	clk := clock.System{}
	cs, err := classes.Open(ctx, db, clk)
	if err != nil {
		closeDB(db)
		return nil, err
	}
	return &app{
		cfg:     cfg,
		db:      db,
		classes: cs,
		streaks: streaks.New(db),
		clock:   clk,
	}, nil
}

func (a *app) close() {
	closeDB(a.db)
}

func closeDB(db *kv.SQLite) {
	if cerr := db.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func runStudyCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.LogFile != "" {
		f, err := tea.LogToFile(a.cfg.LogFile, "studypick")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close log file: %v\n", cerr)
			}
		}()
	} else {
		log.SetOutput(io.Discard)
	}

	m, err := tui.NewModel(a.cfg, a.classes, a.streaks, a.clock)
	if err != nil {
		return fmt.Errorf("failed to build TUI: %w", err)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a class",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAddCmd,
	}
	cmd.Flags().StringVar(&addDate, "date", "", "next exam date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&addConfidence, "confidence", 0, "confidence from 1 (low) to 10 (high)")
	return cmd
}

func runAddCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	rec, err := a.classes.Add(cmd.Context(), classes.Input{
		Name:       strings.Join(args, " "),
		NextTest:   addDate,
		Confidence: strconv.Itoa(addConfidence),
	})
	if err != nil {
		var verr *classes.ValidationError
		if errors.As(err, &verr) {
			logErrln("Fill all fields correctly! Confidence: 1-10")
		}
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (exam %s, confidence %d)\n",
		rec.Name, rec.NextTest.Format(model.DateLayout), rec.Confidence)
	return err
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove INDEX",
		Short: "Remove a class by its number in `studypick list`",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemoveCmd,
	}
}

func runRemoveCmd(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	list, err := a.classes.List(cmd.Context())
	if err != nil {
		return err
	}
	if err := a.classes.Remove(cmd.Context(), n-1); err != nil {
		var ierr *classes.IndexError
		if errors.As(err, &ierr) {
			return fmt.Errorf("no class #%d (have %d)", n, ierr.Len)
		}
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", list[n-1].Name)
	return err
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List classes (expired classes are dropped)",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().BoolVar(&listWeights, "weights", false, "show selection weights and chances")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	list, err := a.classes.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No classes added yet.")
		return err
	}
	lines := report.ClassLines(list, report.Options{
		Now:       a.clock.Now(),
		Weights:   listWeights,
		NameWidth: report.NameWidthFor(report.TerminalWidth()),
	})
	return report.WriteLines(cmd.OutOrStdout(), lines)
}

func newPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Draw a class without starting a session",
		Args:  cobra.NoArgs,
		RunE:  runPickCmd,
	}
}

func runPickCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	list, err := a.classes.List(cmd.Context())
	if err != nil {
		return err
	}
	rec, err := selector.Select(list, a.clock.Now(), selector.NewSource())
	if err != nil {
		if errors.Is(err, selector.ErrEmptySet) {
			logErrln("Add at least one class to start!")
		}
		return err
	}
	streak, err := a.streaks.Get(cmd.Context(), rec.Name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\nExam Date: %s\nStreak: %d\n",
		rec.Name, rec.NextTest.Format(model.DateLayout), streak)
	return err
}

func newStreaksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streaks",
		Short: "Show completed sessions per class",
		Args:  cobra.NoArgs,
		RunE:  runStreaksCmd,
	}
}

func runStreaksCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	entries, err := a.streaks.All(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No completed sessions yet.")
		return err
	}
	lines := report.StreakLines(entries, report.NameWidthFor(report.TerminalWidth()))
	return report.WriteLines(cmd.OutOrStdout(), lines)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# studypick configuration
# Uncomment a value to enable it. %s, %s and %s (also read from .env)
# override the file; the --db flag overrides both.

[storage]
# path = %q

[notify]
# bell = true             # Ring the terminal bell when a session completes

[log]
# file = ""               # Write TUI diagnostics to this file
`,
		config.EnvDBPath,
		config.EnvLogFile,
		config.EnvBell,
		config.DefaultDBPath(),
	)
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
