package result

import (
	"strings"
)

// ChildReport summarizes a Child for display.
type ChildReport struct {
	Relationship       Relationship `json:"relationship"`
	SHA256             string       `json:"sha256"`
	Size               int          `json:"size"`
	Features           Features     `json:"features,omitempty"`
	PasswordDictionary []string     `json:"password_dictionary,omitempty"`
}

// TextReport summarizes a text blob for display.
type TextReport struct {
	SHA256 string `json:"sha256"`
	Size   int    `json:"size"`
}

// Report is a serializable summary of a Result. Payload bytes are replaced
// by their digests.
type Report struct {
	Source   string        `json:"source,omitempty"`
	Error    string        `json:"error,omitempty"`
	OptOut   string        `json:"opt_out,omitempty"`
	Features Features      `json:"features,omitempty"`
	Texts    []TextReport  `json:"texts,omitempty"`
	Children []ChildReport `json:"children,omitempty"`
}

// Report summarizes the Result.
func (r *Result) Report(source string) *Report {
	rep := &Report{
		Source:   source,
		Features: r.Features,
	}

	for _, t := range r.Texts {
		rep.Texts = append(rep.Texts, TextReport{SHA256(t), len(t)})
	}

	for _, c := range r.Children {
		cr := ChildReport{
			Relationship: c.Relationship,
			SHA256:       SHA256(c.Data),
			Size:         len(c.Data),
			Features:     c.Features,
		}
		if len(c.PasswordDictionary) > 0 {
			cr.PasswordDictionary = strings.Split(string(c.PasswordDictionary), "\n")
		}
		rep.Children = append(rep.Children, cr)
	}

	return rep
}
