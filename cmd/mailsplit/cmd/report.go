package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zostay/mailsplit/analyze"
	"github.com/zostay/mailsplit/result"
)

// analysis runs against one input, reporting into res.
type analysis func(source string, res *result.Result) (result.Features, error)

type reporter struct {
	enc *json.Encoder

	// dir receives the data of every child when not empty.
	dir string
}

func newReporter(w io.Writer) *reporter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &reporter{enc: enc, dir: extractDir}
}

// run runs fn and writes its report. Failures of the analysis end up in the
// report. Only a failure to write the report is returned.
func (r *reporter) run(source string, fn analysis) error {
	res := result.New()
	f, err := fn(source, res)
	res.Features.Merge(f)

	rep := res.Report(source)
	switch {
	case errors.Is(err, analyze.ErrOptOut):
		slog.Debug("input skipped", "source", source, "reason", err)
		rep.OptOut = err.Error()
	case err != nil:
		slog.Warn("analysis failed", "source", source, "error", err)
		rep.Error = err.Error()
	}

	if err := r.extract(res.Children); err != nil {
		return err
	}

	return r.enc.Encode(rep)
}

// extract writes each child under its digest. A password dictionary goes
// next to its child with a .pwd suffix.
func (r *reporter) extract(children []result.Child) error {
	if r.dir == "" || len(children) == 0 {
		return nil
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}

	for _, c := range children {
		name := filepath.Join(r.dir, result.SHA256(c.Data))
		if err := os.WriteFile(name, c.Data, 0o600); err != nil {
			return err
		}

		if len(c.PasswordDictionary) > 0 {
			if err := os.WriteFile(name+".pwd", c.PasswordDictionary, 0o600); err != nil {
				return err
			}
		}
	}
	return nil
}
