package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/tsawler/rtf"
)

var (
	cfgFile   string
	codePage  int
	verbosity int
	logFile   string

	// cfg is the merged configuration of the current invocation.
	cfg Config
)

var rootCmd = &cobra.Command{
	Use:               "rtfdump",
	Short:             "Inspect RTF documents",
	Long:              "rtfdump parses RTF documents and prints their event stream, text or metadata.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.rtfdump.toml)")
	flags.IntVar(&codePage, "codepage", 0, "code page for 8-bit text until the document sets one")
	flags.CountVarP(&verbosity, "verbose", "v", "log verbosity (repeat for more)")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rtfdump.toml")
}

// setup merges the config file with the flags and configures logging.
func setup(cmd *cobra.Command, _ []string) error {
	path, required := cfgFile, true
	if path == "" {
		path, required = defaultConfigPath(), false
	}

	c, err := loadConfig(path, required)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("codepage") {
		c.CodePage = codePage
	}
	if flags.Changed("verbose") {
		c.Verbosity = verbosity
	}
	if flags.Changed("log-file") {
		c.LogFile = logFile
	}

	var logPath *string
	if c.LogFile != "" {
		logPath = &c.LogFile
	}
	commonlog.Configure(c.Verbosity, logPath)

	cfg = c
	return nil
}

// newExtractor returns an extractor for name configured from cfg. The name
// "-" reads standard input.
func newExtractor(cmd *cobra.Command, name string) *rtf.Extractor {
	var e *rtf.Extractor
	if name == "-" {
		e = rtf.FromReader(cmd.InOrStdin())
	} else {
		e = rtf.Open(name)
	}
	return e.CodePage(cfg.CodePage).
		UnicodeSkip(cfg.UnicodeSkip).
		BufferSize(cfg.BufferSize).
		Logger(commonlog.GetLogger("rtfdump"))
}

// printWarnings reports non-fatal parse issues on stderr.
func printWarnings(cmd *cobra.Command, warnings []rtf.Warning) {
	for _, w := range warnings {
		cmd.PrintErrln("warning:", w.Message)
	}
}
