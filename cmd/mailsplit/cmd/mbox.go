package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emersion/go-mbox"
	"github.com/spf13/cobra"

	"github.com/zostay/mailsplit/analyze"
	"github.com/zostay/mailsplit/result"
)

var mboxCmd = &cobra.Command{
	Use:   "mbox file...",
	Short: "Report the header and MIME parts of every message in mbox files",
	Long: `Each message of each mbox file gets its own report, with the source
named after the file and the message number, e.g. inbox#3. The header and
MIME analyses are both run and their features combined.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMbox,
}

func init() {
	rootCmd.AddCommand(mboxCmd)
}

func runMbox(cmd *cobra.Command, args []string) error {
	rep := newReporter(cmd.OutOrStdout())
	for _, path := range args {
		if err := reportMbox(rep, path); err != nil {
			return err
		}
	}
	return nil
}

func reportMbox(rep *reporter, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	reader := mbox.NewReader(f)
	for i := 1; ; i++ {
		mr, err := reader.NextMessage()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("%s: unable to read message %d: %w", path, i, err)
		}

		data, err := io.ReadAll(mr)
		if err != nil {
			return fmt.Errorf("%s: unable to read message %d: %w", path, i, err)
		}

		source := fmt.Sprintf("%s#%d", path, i)
		if err := rep.run(source, mailOf(data)); err != nil {
			return err
		}
	}
}

// mailOf runs both the header and the MIME analysis on a message. A MIME
// opt-out is fine as long as the header analysis had something to say.
func mailOf(data []byte) analysis {
	return func(_ string, res *result.Result) (result.Features, error) {
		f, err := analyze.Headers(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}

		mf, err := analyze.MIME(bytes.NewReader(data), cfg.MIME, res)
		if errors.Is(err, analyze.ErrOptOut) {
			slog.Debug("message is not MIME", "error", err)
			return f, nil
		} else if err != nil {
			return f, err
		}

		f.Merge(mf)
		return f, nil
	}
}
