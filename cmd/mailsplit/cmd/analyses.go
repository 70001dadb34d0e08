package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/mailsplit/analyze"
	"github.com/zostay/mailsplit/result"
)

var headersCmd = &cobra.Command{
	Use:   "headers file...",
	Short: "Report the normalized mail header of each file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEach(cmd, args, headersOf)
	},
}

var mimeCmd = &cobra.Command{
	Use:   "mime file...",
	Short: "Decompose each file as a MIME message",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEach(cmd, args, mimeOf)
	},
}

var msgCmd = &cobra.Command{
	Use:   "msg file...",
	Short: "Decompose each file as an Outlook message",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEach(cmd, args, msgOf)
	},
}

func init() {
	rootCmd.AddCommand(headersCmd, mimeCmd, msgCmd)
}

func runEach(cmd *cobra.Command, paths []string, fn analysis) error {
	rep := newReporter(cmd.OutOrStdout())
	for _, path := range paths {
		if err := rep.run(path, fn); err != nil {
			return err
		}
	}
	return nil
}

func msgOf(path string, res *result.Result) (result.Features, error) {
	return analyze.OleMail(path, res)
}

func headersOf(path string, _ *result.Result) (result.Features, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return analyze.Headers(f)
}

func mimeOf(path string, res *result.Result) (result.Features, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return analyze.MIME(f, cfg.MIME, res)
}
