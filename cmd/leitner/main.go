// Package main provides the CLI entrypoint for leitner.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/leitner/internal/config"
	"github.com/verte-zerg/leitner/internal/deck"
	"github.com/verte-zerg/leitner/internal/importer"
	"github.com/verte-zerg/leitner/internal/menu"
	"github.com/verte-zerg/leitner/internal/model"
	"github.com/verte-zerg/leitner/internal/report"
	"github.com/verte-zerg/leitner/internal/scheduler"
	"github.com/verte-zerg/leitner/internal/store"
)

const (
	defaultWidth = 0
	defaultColor = "auto"
)

var (
	dbPath string

	practiceShuffle bool
	practiceWidth   int
	practiceColor   string

	addQuestion string
	addAnswer   string

	listBox int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "leitner",
		Short:         "Leitner box flashcard trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "path to the card database")
	rootCmd.Flags().BoolVar(&practiceShuffle, "shuffle", false, "shuffle cards within each review batch")
	rootCmd.Flags().IntVar(&practiceWidth, "width", defaultWidth, "wrap card text at this width (0: terminal width)")
	rootCmd.Flags().StringVar(&practiceColor, "color", defaultColor, "colour output: auto, always or never")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	// LEITNER_DB already seeded the --db default and outranks the file.
	if os.Getenv(config.DBPathEnv) == "" {
		applyStringConfig(cmd, "db", &dbPath, fileCfg.Store.Path)
	}
	applyBoolConfig(cmd, "shuffle", &practiceShuffle, fileCfg.Practice.Shuffle)
	applyIntConfig(cmd, "width", &practiceWidth, fileCfg.Practice.Width)
	applyStringConfig(cmd, "color", &practiceColor, fileCfg.Practice.Color)

	cfg := model.Config{
		DBPath:  dbPath,
		Shuffle: practiceShuffle,
		Width:   practiceWidth,
		Color:   practiceColor,
	}
	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func openStore(cfg model.Config) (*store.Store, func(), error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	return st, closeFn, nil
}

func newScheduler(st *store.Store, cfg model.Config) *scheduler.Scheduler {
	var opts []scheduler.Option
	if cfg.Shuffle {
		opts = append(opts, scheduler.WithOrderer(deck.New()))
	}
	return scheduler.New(st, opts...)
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	runner := menu.NewRunner(cmd.InOrStdin(), cmd.OutOrStdout(), newScheduler(st, cfg), menu.Options{
		Width: cfg.Width,
		Color: cfg.Color,
	})
	return runner.Run(context.Background())
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a flashcard",
		Args:  cobra.NoArgs,
		RunE:  runAddCmd,
	}
	cmd.Flags().StringVarP(&addQuestion, "question", "q", "", "question text")
	cmd.Flags().StringVarP(&addAnswer, "answer", "a", "", "answer text")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")
	return cmd
}

func runAddCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	card, err := newScheduler(st, cfg).AddCard(context.Background(), addQuestion, addAnswer)
	if err != nil {
		return fmt.Errorf("failed to add card: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Added card %d\n", card.ID); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List flashcards",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().IntVar(&listBox, "box", 0, "only cards in this box (1-3)")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	if listBox < 0 || listBox >= model.MasteredBox {
		return fmt.Errorf("--box must be between 1 and %d", model.MasteredBox-1)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	var cards []model.Card
	if listBox > 0 {
		cards, err = st.CardsInBox(ctx, listBox)
	} else {
		cards, err = st.ListCards(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}
	if len(cards) == 0 {
		logErrln("No flashcards yet. Add one with: leitner add -q <question> -a <answer>")
		return nil
	}
	for _, line := range report.CardTable(cards) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Import flashcards from .md, .txt, .csv or .xlsx files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sched := newScheduler(st, cfg)
	ctx := context.Background()
	for _, path := range args {
		entries, err := importer.ParseFile(path)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		res, err := importer.Import(ctx, sched, entries)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: imported %d, skipped %d\n", path, res.Imported, res.Skipped); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
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
	if err := writeDefaultConfig(path); err != nil {
		return err
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

// writeDefaultConfig creates the config file from the template unless it
// already exists.
func writeDefaultConfig(path string) error {
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# leitner configuration
# Uncomment a value to enable it. CLI flags override config values.

[store]
# path = %q   # Card database (env %s outranks this)

[practice]
# shuffle = false   # Shuffle cards within each review batch
# width = %d         # Wrap card text at this width (0: terminal width)
# color = %q    # auto, always or never
`,
		config.XDGDBPath(),
		config.DBPathEnv,
		defaultWidth,
		defaultColor,
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
