package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/nbread/cmd/config"
	"github.com/mattsolo1/nbread/pkg/display"
	"github.com/mattsolo1/nbread/pkg/search"
	"github.com/mattsolo1/nbread/pkg/service"
)

type rootOptions struct {
	summary    bool
	cell       int
	showInit   bool
	showErrors bool
	search     string
	noOutput   bool
	cellType   string
	tagPattern string
	verbose    bool
	cfgFile    string
}

// NewRootCmd builds the nbread command. Exactly one action flag is expected
// per invocation; without one the help text is printed.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nbread <notebook>",
		Short: "Read specific cells from Jupyter notebooks",
		Long: `Inspect a Jupyter notebook without dumping the whole file.

Examples:
  nbread analysis.ipynb --summary                 # One line per cell
  nbread analysis.ipynb --summary --tag 'FUNCTION:*'
  nbread analysis.ipynb --cell 12                 # Source and output of cell 12
  nbread analysis.ipynb --cell 12 --no-output --highlight
  nbread analysis.ipynb --init                    # Setup / import cells
  nbread analysis.ipynb --errors                  # Cells whose output failed
  nbread analysis.ipynb --search 'read_csv\('     # Regex search over sources
  nbread analysis.ipynb --errors --format json    # Machine-readable output`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.summary, "summary", false, "Show summary of all cells")
	flags.IntVar(&opts.cell, "cell", 0, "Show specific cell by index")
	flags.BoolVar(&opts.showInit, "init", false, "Show initialization cells")
	flags.BoolVar(&opts.showErrors, "errors", false, "Show cells with errors")
	flags.StringVar(&opts.search, "search", "", "Search for a regular expression in cell sources")
	flags.BoolVar(&opts.noOutput, "no-output", false, "Don't show cell outputs")
	flags.StringVar(&opts.cellType, "type", "", "Only summarize cells of this type (code, markdown, raw)")
	flags.StringVar(&opts.tagPattern, "tag", "", "Only summarize cells whose tag matches this glob")

	flags.String(config.KeyFormat, config.FormatText, "Output format: text, json or yaml")
	flags.Int(config.KeyMaxLines, 0, "Limit source, output and traceback sections to N lines (0 = no limit)")
	flags.Bool(config.KeyHighlight, false, "Syntax-highlight cell sources")
	flags.String(config.KeyStyle, display.DefaultStyle, "Highlighting style")
	flags.Bool(config.KeyCaseSensitive, false, "Make --search case-sensitive")
	flags.Int(config.KeyMaxMatches, search.DefaultMaxMatches, "Matches reported per cell by --search")
	flags.String(config.KeyLogLevel, "warn", "Log level: debug, info, warn or error")

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/nbread/config.yaml)")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	showCell := cmd.Flags().Changed("cell")
	if !opts.summary && !showCell && !opts.showInit && !opts.showErrors && opts.search == "" {
		return cmd.Help()
	}
	if len(args) == 0 {
		return fmt.Errorf("a notebook path is required")
	}

	settings, err := config.Load(opts.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if opts.verbose {
		settings.LogLevel = logrus.DebugLevel
	}
	logger := config.NewLogger(settings.LogLevel)
	if settings.ConfigFile != "" {
		logger.WithField("config", settings.ConfigFile).Debug("using config file")
	}

	svc, err := service.Open(args[0], logger)
	if err != nil {
		return err
	}

	a := &action{
		svc:      svc,
		settings: settings,
		out:      cmd.OutOrStdout(),
		noOutput: opts.noOutput,
	}

	switch {
	case opts.summary:
		return a.summary(opts.cellType, opts.tagPattern)
	case showCell:
		return a.cell(opts.cell)
	case opts.showInit:
		return a.initCells()
	case opts.showErrors:
		return a.errorCells()
	default:
		return a.search(opts.search)
	}
}
