// Package main provides the CLI entrypoint for codedrill.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/codedrill/codedrill/internal/config"
	"github.com/codedrill/codedrill/internal/model"
	"github.com/codedrill/codedrill/internal/provider"
	"github.com/codedrill/codedrill/internal/stats"
	"github.com/codedrill/codedrill/internal/store"
	"github.com/codedrill/codedrill/internal/tui"
)

const (
	defaultLanguage    = "py"
	defaultDuration    = time.Minute
	defaultCurveWindow = 20
)

var (
	practiceLanguage string
	practiceDuration time.Duration
	practiceOffline  bool
	practiceAPIKey   string

	statsLanguage    string
	statsSince       string
	statsLast        int
	statsCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codedrill",
		Short:         "TUI code-typing practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLanguage, "language", defaultLanguage, "programming language (py, cpp, java, rust, javascript)")
	rootCmd.Flags().DurationVar(&practiceDuration, "duration", defaultDuration, "session length (e.g. 30s, 2m)")
	rootCmd.Flags().BoolVar(&practiceOffline, "offline", false, "skip code generation, use built-in samples")
	rootCmd.Flags().StringVar(&practiceAPIKey, "api-key", "", "API key for the code generation service")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "language", &practiceLanguage, fileCfg.Practice.Language)
	applyBoolConfig(cmd, "offline", &practiceOffline, fileCfg.Practice.Offline)
	applyStringConfig(cmd, "api-key", &practiceAPIKey, fileCfg.Provider.APIKey)
	if err := applyDurationConfig(cmd, "duration", &practiceDuration, fileCfg.Practice.Duration); err != nil {
		return err
	}

	lang, err := model.ParseLanguage(practiceLanguage)
	if err != nil {
		return err
	}
	if practiceDuration <= 0 {
		return fmt.Errorf("--duration must be greater than 0")
	}

	provCfg := providerConfig(fileCfg.Provider)
	if err := validateProviderConfig(provCfg); err != nil {
		return err
	}

	cfg := model.Config{
		Language: lang,
		Duration: practiceDuration,
		Offline:  practiceOffline,
	}

	var src provider.CodeSource
	if !cfg.Offline {
		src = provider.NewRemote(provCfg)
	}
	// The fetch happens here, before the session exists; by the time a
	// keystroke can arrive the target is already fixed.
	target := provider.Resolve(context.Background(), src, cfg.Language, provCfg.MinLines, provCfg.MaxLines)
	if target.Notice != "" {
		logErrln(target.Notice)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	m := tui.NewModel(cfg, provCfg, st, src, target)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func providerConfig(fileCfg config.ProviderConfig) model.ProviderConfig {
	cfg := model.ProviderConfig{
		APIKey:   practiceAPIKey,
		MinLines: provider.DefaultMinLines,
		MaxLines: provider.DefaultMaxLines,
	}
	if fileCfg.Endpoint != nil {
		cfg.Endpoint = *fileCfg.Endpoint
	}
	if fileCfg.Model != nil {
		cfg.Model = *fileCfg.Model
	}
	if fileCfg.TimeoutS != nil {
		cfg.Timeout = time.Duration(*fileCfg.TimeoutS) * time.Second
	}
	if fileCfg.MinLines != nil {
		cfg.MinLines = *fileCfg.MinLines
	}
	if fileCfg.MaxLines != nil {
		cfg.MaxLines = *fileCfg.MaxLines
	}
	return cfg
}

func validateProviderConfig(cfg model.ProviderConfig) error {
	if cfg.MinLines <= 0 {
		return fmt.Errorf("min-lines must be greater than 0")
	}
	if cfg.MaxLines < cfg.MinLines {
		return fmt.Errorf("max-lines must not be smaller than min-lines")
	}
	return nil
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

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	for _, lang := range model.Languages() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", lang, lang.DisplayName()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLanguage, "language", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Language:    statsLanguage,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := report.Render(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	parsed, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid duration in config: %w", err)
	}
	*target = parsed
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# codedrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# language = %q          # Programming language (py, cpp, java, rust, javascript)
# duration = "1m"        # Session length (e.g. 30s, 2m)
# offline = false        # Skip code generation, use built-in samples

[provider]
# endpoint = %q
# model = %q
# api-key = ""           # API key for the generation service
# timeout-seconds = 60   # Request timeout
# min-lines = %d         # Shorter results are replaced with the sample
# max-lines = %d         # Longer results are truncated
`,
		defaultLanguage,
		provider.DefaultEndpoint,
		provider.DefaultModel,
		provider.DefaultMinLines,
		provider.DefaultMaxLines,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
