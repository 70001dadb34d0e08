package mimewalk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/zostay/mailsplit/dictionary"
	"github.com/zostay/mailsplit/message"
	"github.com/zostay/mailsplit/message/header"
	"github.com/zostay/mailsplit/message/header/field"
	"github.com/zostay/mailsplit/message/transfer"
	"github.com/zostay/mailsplit/message/walk"
	"github.com/zostay/mailsplit/result"
)

// Opt-out errors. They mean the input is not a MIME message, not that it is
// broken.
var (
	ErrNoMimeSignature  = errors.New("no header line found near the start of the data")
	ErrNotMimeVersioned = errors.New("no MIME-Version field in the header")
)

var headerLine = regexp.MustCompile(`(?m)^([-\w]+): ([^\r\n;])`)

// encryptedMagics are the leading bytes of formats that may be password
// protected. Content types lie, so payloads are checked directly too.
var encryptedMagics = [][]byte{
	[]byte("PK"),
	[]byte("\xd0\xcf\x11"),
	[]byte("Rar!"),
	[]byte("%PDF"),
	[]byte("7z"),
}

const encodingNone = "none"

// FindStart returns the offset of the first header line within the first
// DefaultScanDepth bytes of data.
func FindStart(data []byte) (int, bool) {
	window := data
	if len(window) > DefaultScanDepth {
		window = window[:DefaultScanDepth]
	}

	loc := headerLine.FindIndex(window)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

type walker struct {
	cfg  *Config
	emit result.Emitter
	sum  *Summary

	types  map[string]struct{}
	hashes map[string]struct{}
	plain  [][]byte
	html   [][]byte
}

// Walk decomposes the MIME message found in data. Anything before the first
// header line is skipped. Body texts and children are reported to emit as
// they are found, and the returned Summary describes the whole message.
//
// Walk returns ErrNoMimeSignature or ErrNotMimeVersioned when data does not
// look like MIME at all. Damage inside the message is worked around rather
// than reported.
func Walk(data []byte, cfg Config, emit result.Emitter) (*Summary, error) {
	start, ok := FindStart(data)
	if !ok {
		return nil, ErrNoMimeSignature
	}

	msg, err := message.Parse(bytes.NewReader(data[start:]),
		message.WithMaxDepth(cfg.maxDepth()))
	if err != nil {
		return nil, fmt.Errorf("unable to parse MIME message: %w", err)
	}

	h := msg.GetHeader()
	versions, err := h.GetAll(header.MIMEVersion)
	if err != nil {
		return nil, ErrNotMimeVersioned
	}

	w := &walker{
		cfg:    &cfg,
		emit:   emit,
		sum:    &Summary{Version: versions[len(versions)-1]},
		types:  map[string]struct{}{},
		hashes: map[string]struct{}{},
	}

	if b, err := h.GetBoundary(); err == nil {
		w.sum.Boundary = b
	}

	if err := w.walkTree(msg, 0); err != nil {
		return nil, err
	}

	w.finish()

	if mm, ok := msg.(*message.Multipart); ok {
		w.epilogue(mm.Epilogue())
	}

	return w.sum, nil
}

// walkTree visits every part of msg. depth counts the attached messages
// msg is nested within.
func (w *walker) walkTree(msg message.Part, depth int) error {
	for _, part := range walk.Leaves(msg) {
		attached, err := w.visit(part)
		if err != nil {
			return err
		}

		if attached != nil && depth < w.cfg.maxDepth() {
			if err := w.walkAttached(attached, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// visit handles a single leaf part. For a message/rfc822 part, it returns the
// attached message so the caller can walk it after the part itself.
func (w *walker) visit(part message.Part) ([]byte, error) {
	h := part.GetHeader()

	contentType, err := h.GetMediaType()
	if err != nil || !strings.Contains(contentType, "/") {
		contentType = "text/plain"
	}

	mainType, _, _ := strings.Cut(contentType, "/")
	if mainType == "multipart" {
		// a multipart that could not be split, nothing to decode
		return nil, nil
	}

	var body []byte
	if r := part.GetReader(); r != nil {
		body, err = io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("unable to read part body: %w", err)
		}
	}

	encoding, hasEncoding := h.GetFirst(header.ContentTransferEncoding)
	if encoding == "" {
		hasEncoding = false
		encoding = encodingNone
	}

	var payload, attached []byte
	if mainType == "message" {
		payload = append(h.Bytes(), body...)
		if contentType == "message/rfc822" {
			attached = body
		}
	} else {
		payload, err = transfer.ApplyTransferDecoding(h, body)
		if err != nil {
			slog.Debug("transfer decoding failed, keeping what was decoded",
				"content-type", contentType,
				"encoding", encoding,
				"error", err)
		}
	}

	if len(payload) == 0 {
		return attached, nil
	}

	w.sum.PartCount++

	if len(bytes.TrimSpace(payload)) == 0 {
		return attached, nil
	}

	filename := partFilename(h)

	w.types[contentType] = struct{}{}
	w.hashes[result.SHA256(payload)] = struct{}{}

	if w.cfg.ReportMailBodies && filename == "" {
		switch contentType {
		case "text/plain":
			w.plain = append(w.plain, payload)
		case "text/html":
			if text := htmlText(payload); len(bytes.TrimSpace(text)) > 0 {
				w.html = append(w.html, text)
			}
		}
	}

	if w.cfg.filtered(contentType) {
		return attached, nil
	}

	features := result.Features{}
	features.Set(FeatureContentType, contentType)
	if hasEncoding {
		features.Set(FeatureContentEncoding, encoding)
	}
	if loc, ok := h.GetFirst(header.ContentLocation); ok && loc != "" {
		features.Set(FeatureContentLocation, loc)
	}
	if id, ok := h.GetFirst(header.ContentID); ok && id != "" {
		features.Set(FeatureContentID, id)
	}
	if filename != "" {
		features.Set(result.FeatureFilename, filename)
	}

	child := result.Child{
		Relationship: result.Relationship{
			"action":   "extracted",
			"encoding": encoding,
		},
		Data:     payload,
		Features: features,
	}

	if mainType == "application" || hasEncryptedMagic(payload) {
		if bodies := w.bodies(); len(bodies) > 0 {
			child.PasswordDictionary = dictionary.Build(bodies, filename)
		}
	}

	w.emit.EmitChild(child)
	return attached, nil
}

// walkAttached parses the body of a message/rfc822 part and walks it as
// part of the enclosing message.
func (w *walker) walkAttached(body []byte, depth int) error {
	if len(body) == 0 {
		return nil
	}

	msg, err := message.Parse(bytes.NewReader(body),
		message.WithMaxDepth(w.cfg.maxDepth()))
	if err != nil {
		slog.Debug("unable to parse attached message", "error", err)
		return nil
	}

	return w.walkTree(msg, depth)
}

// bodies returns the captured plain text bodies, or the HTML ones when
// there is no plain text.
func (w *walker) bodies() [][]byte {
	if len(w.plain) > 0 {
		return w.plain
	}
	return w.html
}

func (w *walker) finish() {
	for _, text := range w.bodies() {
		w.emit.EmitText(text)
	}

	w.sum.PartTypes = sortedKeys(w.types)
	w.sum.PartHashes = sortedKeys(w.hashes)
}

func (w *walker) epilogue(epilogue []byte) {
	if len(bytes.TrimSpace(epilogue)) == 0 {
		return
	}

	w.sum.TrailingData = true
	w.sum.Epilogue = epilogue

	if w.cfg.AppendedDataAsChild {
		w.emit.EmitChild(result.Child{
			Relationship: result.Relationship{
				"action": "extracted",
				"type":   "epilogue",
			},
			Data: epilogue,
		})
	}
}

// partFilename returns the decoded filename of the part, falling back to
// the last element of the Content-Location.
func partFilename(h *header.Header) string {
	name, err := h.GetFilename()
	if err != nil || name == "" {
		loc, _ := h.GetFirst(header.ContentLocation)
		if loc == "" {
			return ""
		}
		name = loc[strings.LastIndex(loc, "/")+1:]
	}
	return field.DecodeOrRaw(name)
}

func hasEncryptedMagic(payload []byte) bool {
	for _, magic := range encryptedMagics {
		if bytes.HasPrefix(payload, magic) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
