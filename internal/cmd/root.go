package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/rsearch/internal/config"
	"github.com/harrison/rsearch/internal/display"
	"github.com/harrison/rsearch/internal/export"
	"github.com/harrison/rsearch/internal/logger"
	"github.com/harrison/rsearch/internal/search"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ErrArgCount is returned when the two positional arguments are not given.
var ErrArgCount = errors.New("invalid argument count - usage: rsearch [folder] [search] (arguments)")

// progressInterval is the redraw period of the progress bar.
const progressInterval = 100 * time.Millisecond

// NewRootCommand creates and returns the root cobra command for rsearch
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rsearch <root-path> <name-pattern>",
		Short: "Recursive parallel file search by name and content",
		Long: `rsearch walks a directory tree in parallel and lists every file whose
base name matches a regular expression. With --look-in, a file is only listed
when its full text is valid UTF-8 and also matches the content expression.

A progress bar is drawn on stderr while the search runs. It is driven by a
concurrent pass that counts the entries of the tree.

Configuration is loaded from .rsearch.yaml in the working directory if present.
CLI flags override configuration file settings.

Examples:
  rsearch ~/src '\.go$'
  rsearch ~/src '_test\.go$' --look-in 't\.Parallel\(\)'
  rsearch . 'README' --no-progress-bar
  rsearch /var/log '\.log$' --workers 16 --save matches.json --format json`,
		Version: Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return ErrArgCount
			}
			return nil
		},
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSearch,
	}

	cmd.Flags().String("look-in", "", "Only list files whose text content matches this regular expression")
	cmd.Flags().Bool("no-progress-bar", false, "Disable the progress bar and the counting pass")
	cmd.Flags().Int("workers", 0, "Worker pool size (default from config, 8)")
	cmd.Flags().Bool("fan-out", true, "Search sibling directories in parallel (false = one subtree at a time)")
	cmd.Flags().Bool("gitignore", false, "Skip paths excluded by the root's .gitignore")
	cmd.Flags().String("save", "", "Also write the matches to this file")
	cmd.Flags().String("format", "", "Format for --save: text, json or yaml (default text)")
	cmd.Flags().String("log-level", "", "Console log level: trace, debug, info, warn, error (default warn)")
	cmd.Flags().String("log-dir", "", "Write a per-search log file into this directory")
	cmd.Flags().String("config", "", "Path to config file (default: ./.rsearch.yaml)")

	return cmd
}

// runSearch implements the search command logic
func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := search.Options{
		Root:             args[0],
		NamePattern:      args[1],
		ShowProgress:     cfg.Progress,
		Workers:          cfg.Workers,
		FanOut:           cfg.FanOut,
		RespectGitignore: cfg.RespectGitignore,
	}
	opts.ContentPattern, _ = cmd.Flags().GetString("look-in")

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	searchID := uuid.New().String()

	log, closeLog, err := newLogger(errOut, cfg, searchID)
	if err != nil {
		return err
	}
	defer closeLog()

	var bar *logger.ProgressBar
	var progress search.Progress
	if opts.ShowProgress {
		bar = logger.NewProgressBar(errOut, 40, !color.NoColor)
		progress = bar
	}

	searcher, err := search.New(opts, progress, log)
	if err != nil {
		return err
	}

	display.Header(out, opts.Root)
	log.LogSearchStart(opts)
	if bar != nil {
		bar.Start(progressInterval)
	}

	result := searcher.Run()
	log.LogSummary(result)

	if len(result.Matches) == 0 {
		display.Warn(out, "no match")
	} else if err := display.Matches(out, result.Matches); err != nil {
		return fmt.Errorf("failed to write matches: %w", err)
	}

	if cfg.Save.Path != "" {
		format, err := export.ParseFormat(cfg.Save.Format)
		if err != nil {
			return err
		}
		report := export.NewReport(searchID, opts, result)
		if err := export.Save(cfg.Save.Path, report, format); err != nil {
			return err
		}
		log.LogInfo(fmt.Sprintf("saved %d matches to %s", report.Count, cfg.Save.Path))
	}

	return nil
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		if _, statErr := os.Stat(configPath); statErr != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, statErr)
		}
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Only flags set on the command line override the file.
	var flags config.Flags
	if cmd.Flags().Changed("workers") {
		v, _ := cmd.Flags().GetInt("workers")
		flags.Workers = &v
	}
	if cmd.Flags().Changed("fan-out") {
		v, _ := cmd.Flags().GetBool("fan-out")
		flags.FanOut = &v
	}
	if cmd.Flags().Changed("no-progress-bar") {
		v, _ := cmd.Flags().GetBool("no-progress-bar")
		flags.NoProgress = &v
	}
	if cmd.Flags().Changed("gitignore") {
		v, _ := cmd.Flags().GetBool("gitignore")
		flags.RespectGitignore = &v
	}
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		flags.LogLevel = &v
	}
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		flags.LogDir = &v
	}
	if cmd.Flags().Changed("save") {
		v, _ := cmd.Flags().GetString("save")
		flags.SavePath = &v
	}
	if cmd.Flags().Changed("format") {
		v, _ := cmd.Flags().GetString("format")
		flags.SaveFormat = &v
	}
	cfg.MergeWithFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the console logger and, when log_dir is set, a file logger
// alongside it. The returned func closes the file logger.
func newLogger(w io.Writer, cfg *config.Config, searchID string) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(w, cfg.LogLevel)
	if cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, searchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open search log: %w", err)
	}
	return logger.NewMulti(console, fileLog), func() { fileLog.Close() }, nil
}
