package result

import (
	"crypto/sha256"
	"encoding/hex"
)

// Data labels for the blobs attached to a child.
const (
	LabelContent            = "content"
	LabelText               = "text"
	LabelPasswordDictionary = "password_dictionary"
)

// Relationship describes how a child relates to its parent, such as
// {"action": "extracted", "encoding": "base64"}.
type Relationship map[string]string

// Child is an artifact extracted from the input. It is never changed after it
// is emitted.
type Child struct {
	Relationship Relationship
	Data         []byte
	Features     Features

	// PasswordDictionary, when not nil, is attached to the child under
	// LabelPasswordDictionary.
	PasswordDictionary []byte
}

// SHA256 returns the hex encoded SHA-256 digest of data.
func SHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Emitter receives the text blobs and children produced by an analysis.
type Emitter interface {
	// EmitText reports a text blob, such as a mail body.
	EmitText(text []byte)

	// EmitChild reports an extracted artifact.
	EmitChild(c Child)
}

// Result is an in-memory Emitter that also carries the feature map. It is
// not safe for concurrent use.
type Result struct {
	Features Features
	Texts    [][]byte
	Children []Child
}

var _ Emitter = (*Result)(nil)

// New returns an empty Result.
func New() *Result {
	return &Result{Features: Features{}}
}

// EmitText records a text blob.
func (r *Result) EmitText(text []byte) {
	r.Texts = append(r.Texts, text)
}

// EmitChild records a child.
func (r *Result) EmitChild(c Child) {
	r.Children = append(r.Children, c)
}
