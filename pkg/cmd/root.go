package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/py-imports-group/pkg/config"
	msgs "github.com/siyuan-infoblox/py-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/py-imports-group/pkg/pyimports"
	"github.com/siyuan-infoblox/py-imports-group/pkg/utils"
	"github.com/siyuan-infoblox/py-imports-group/pkg/version"
)

const (
	UseDescription   = "pig [flags] [FILE]"
	ShortDescription = "Python imports grouper - A tool to group and sort Python imports"
	LongDescription  = `pig is a command-line tool that merges, groups and sorts Python import
statements into one PEP8 import block.

It reads one statement per line from FILE, or from stdin when FILE is
missing or "-", and organizes the imports into groups:
1. __future__ imports
2. Python standard library
3. Third-party packages
4. Current project packages (package name, local prefixes and patterns)

Statements from --type-checking are rendered in an "if TYPE_CHECKING:" block.

Settings are read from .pig.toml or the [tool.pig] table of pyproject.toml;
flags override them. The package name defaults to [project].name of the
nearest pyproject.toml.`
)

type options struct {
	packageName   string
	localPrefixes []string
	localPatterns []string
	lineLength    int
	typeChecking  string
	configPath    string
	verbose       bool
	showVersion   bool
}

var rootCmd = NewRootCmd()

// NewRootCmd builds the pig command with its own flag state
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   UseDescription,
		Short: ShortDescription,
		Long:  LongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.packageName, "package-name", "", "Top-level package of the current project (e.g., myproject)")
	flags.StringSliceVar(&opts.localPrefixes, "local-prefixes", []string{}, "Comma-separated list of module prefixes treated as local (e.g., company.shared,internal)")
	flags.StringSliceVar(&opts.localPatterns, "local-patterns", []string{}, "Comma-separated list of glob patterns treated as local (e.g., acme_*)")
	flags.IntVar(&opts.lineLength, "line-length", 0, "Maximum line length before from-imports wrap (default 88)")
	flags.StringVar(&opts.typeChecking, "type-checking", "", "File with statements for the TYPE_CHECKING block")
	flags.StringVar(&opts.configPath, "config", "", "Config file (.pig.toml or pyproject.toml)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log merges and configuration to stderr")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "pig"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if opts.showVersion {
		return printVersion(cmd.OutOrStdout(), opts.verbose)
	}

	path := utils.StdinPath
	if len(args) == 1 {
		path = args[0]
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	cfg, err := loadConfig(cmd, opts, path, logger)
	if err != nil {
		return err
	}

	h, err := pyimports.New(cfg)
	if err != nil {
		return err
	}

	failed, err := addStatements(cmd, path, h.AddImportString, logger)
	if err != nil {
		return err
	}
	if opts.typeChecking != "" {
		n, err := addStatements(cmd, opts.typeChecking, h.AddTypeCheckingImport, logger)
		if err != nil {
			return err
		}
		failed += n
	}

	lines := h.GetFormattedAll()
	if len(lines) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
	}
	logger.Debug(msgs.InfoMsgStatementsRendered, "imports", h.Count(), "type_checking", h.CountTypeChecking())

	if failed > 0 {
		return fmt.Errorf(msgs.ErrMsgStatementsFailed, failed)
	}
	return nil
}

// loadConfig merges file settings with flags; flags that were set win
func loadConfig(cmd *cobra.Command, opts *options, path string, logger *log.Logger) (pyimports.Config, error) {
	baseDir := filepath.Dir(path)
	if path == utils.StdinPath {
		wd, err := os.Getwd()
		if err != nil {
			return pyimports.Config{}, fmt.Errorf("%s: %w", msgs.ErrMsgFailedToGetWorkDir, err)
		}
		baseDir = wd
	}

	var (
		fileCfg *config.Config
		err     error
	)
	if opts.configPath != "" {
		fileCfg, err = config.Load(opts.configPath)
	} else {
		var found string
		fileCfg, found, err = config.Discover(baseDir)
		if found != "" {
			logger.Debug("using config file", "path", found)
		}
	}
	if err != nil {
		return pyimports.Config{}, fmt.Errorf("%s: %w", msgs.ErrMsgFailedToLoadProject, err)
	}

	flags := cmd.Flags()
	if flags.Changed("package-name") {
		fileCfg.PackageName = opts.packageName
	}
	if flags.Changed("local-prefixes") {
		fileCfg.LocalPrefixes = opts.localPrefixes
	}
	if flags.Changed("local-patterns") {
		fileCfg.LocalPatterns = opts.localPatterns
	}
	if flags.Changed("line-length") {
		fileCfg.LineLength = opts.lineLength
	}
	if fileCfg.PackageName == "" {
		fileCfg.PackageName = utils.GetProjectPackage(baseDir)
	}
	logger.Debug(msgs.InfoMsgCurrentPackage, "name", fileCfg.PackageName)

	return pyimports.Config{
		PackageName:   fileCfg.PackageName,
		LocalPrefixes: fileCfg.LocalPrefixes,
		LocalPatterns: fileCfg.LocalPatterns,
		Format:        fileCfg.FormatOptions(),
		Logger:        logger,
	}, nil
}

// addStatements feeds every statement of path to add and reports the ones
// that fail to parse. It returns how many failed.
func addStatements(cmd *cobra.Command, path string, add func(string) error, logger *log.Logger) (int, error) {
	r, err := utils.OpenInput(path, cmd.InOrStdin())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", msgs.ErrMsgFailedToOpenInput, err)
	}
	defer r.Close()

	statements, err := utils.ReadStatements(r)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", msgs.ErrMsgFailedToReadInput, err)
	}

	name := path
	if path == utils.StdinPath {
		name = "<stdin>"
	}

	failed := 0
	for _, statement := range statements {
		if err := add(statement.Text); err != nil {
			failed++
			logger.Error(fmt.Sprintf(msgs.InfoMsgParseFailure, name, statement.Line, err))
		}
	}
	return failed, nil
}

func printVersion(w io.Writer, verbose bool) error {
	info := version.Get()
	if verbose {
		_, err := fmt.Fprintln(w, info.String())
		return err
	}
	_, err := fmt.Fprintf(w, "Python Imports Group (PIG) version %s\n", info.Version)
	return err
}

func Execute() error {
	return rootCmd.Execute()
}
