package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/mailsplit/config"
)

var (
	configFile string
	logLevel   string
	extractDir string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mailsplit",
	Short: "Decompose mail into headers, body text, and attachments",
	Long: `mailsplit takes apart raw RFC822 mail, MIME messages, and Outlook .msg
files. Each command prints one JSON report per input file with the features
found, digests of the body texts, and the extracted attachments.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&extractDir, "extract", "", "write extracted children into this directory")
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	return nil
}
