package message

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"

	"github.com/zostay/mailsplit/internal/scanner"
	"github.com/zostay/mailsplit/message/header"
	"github.com/zostay/mailsplit/message/header/field"
)

// Constants related to Parse() options.
const (
	// DefaultMaxMultipartDepth is the default depth the parser will recurse
	// into a message.
	DefaultMaxMultipartDepth = 16

	// DefaultChunkSize the default size of chunks to read from the input while
	// splitting the message into header and body. Defaults to 16K, though this
	// could change at any time.
	DefaultChunkSize = 16_384

	// DefaultMaxHeaderLength is the default maximum byte length to scan before
	// giving up on finding the end of the header.
	DefaultMaxHeaderLength = 1 << 20

	// DefaultMaxPartLength is the default maximum byte length to scan before
	// given up on scanning a message part at any given level.
	DefaultMaxPartLength = 64 << 20
)

// Errors that occur during parsing.
var (
	// ErrNoBoundary is reported when a multipart Content-type has no boundary
	// parameter. Parse does not fail for this. The part is kept as an *Opaque.
	ErrNoBoundary = errors.New("the boundary parameter is missing from Content-type")

	// ErrLargeHeader is returned by Parse when the header is longer than the
	// configured WithMaxHeaderLength option (or the default,
	// DefaultMaxHeaderLength).
	ErrLargeHeader = errors.New("the header exceeds the maximum parse length")

	// ErrLargePart is returned by Parse when a part is longer than the
	// configured WithMaxPartLength option (or the default,
	// DefaultMaxPartLength).
	ErrLargePart = errors.New("a message part exceeds the maximum parse length")
)

var splits = [][]byte{
	[]byte("\x0d\x0a\x0d\x0a"), // \r\n\r\n
	[]byte("\x0a\x0d\x0a\x0d"), // \n\r\n\r, extremely unlikely, possibly never
	[]byte("\x0a\x0a"),         // \n\n
	[]byte("\x0d\x0d"),         // \r\r
}

type parser struct {
	maxHeaderLen int
	maxPartLen   int
	maxDepth     int
	chunkSize    int
}

func (pr *parser) clone() *parser {
	p := *pr
	return &p
}

var defaultParser = &parser{
	maxHeaderLen: DefaultMaxHeaderLength,
	maxPartLen:   DefaultMaxPartLength,
	maxDepth:     DefaultMaxMultipartDepth,
	chunkSize:    DefaultChunkSize,
}

// ParseOption refers to options that may be passed to the Parse function to
// modify how the parser works.
type ParseOption func(pr *parser)

// WithMaxHeaderLength is a ParseOption that sets the maximum size the buffer is
// allowed to reach before parsing exits with an ErrLargeHeader error. Setting
// this to a value less than or equal to 0 will result in there being no
// maximum length. The default value is DefaultMaxHeaderLength.
func WithMaxHeaderLength(n int) ParseOption {
	return func(pr *parser) { pr.maxHeaderLen = n }
}

// WithMaxPartLength is a ParseOption that sets the maximum size the buffer is
// allowed to reach while scanning for message parts at any level. The last
// part of each multipart, together with its epilogue, must fit in this
// buffer. If a part gets too large, Parse fails with ErrLargePart.
func WithMaxPartLength(n int) ParseOption {
	return func(pr *parser) { pr.maxPartLen = n }
}

// WithChunkSize is a ParseOption that controls how many bytes to read at a time
// while parsing an email message. The default chunk size is DefaultChunkSize.
func WithChunkSize(chunkSize int) ParseOption {
	return func(pr *parser) {
		if chunkSize > 0 {
			pr.chunkSize = chunkSize
		}
	}
}

// WithMaxDepth is a ParseOption that controls how deep the parser will go in
// recursively parsing a multipart message. A negative value means there is no
// limit. Parts below the limit are left as *Opaque.
func WithMaxDepth(maxDepth int) ParseOption {
	return func(pr *parser) { pr.maxDepth = maxDepth }
}

// WithoutMultipart is a ParseOption that will not allow parsing of any
// multipart messages. The message returned from Parse() will always be *Opaque.
//
// Use this option when only the top-level header matters. The header is read
// and parsed, but only a single chunk of the body will have been read. The
// rest of the input io.Reader is left unread.
func WithoutMultipart() ParseOption {
	return func(pr *parser) { pr.maxDepth = 0 }
}

// WithUnlimitedRecursion is a ParseOption that will allow the parser to parse
// sub-parts of any depth.
func WithUnlimitedRecursion() ParseOption {
	return func(pr *parser) { pr.maxDepth = -1 }
}

// searchForSplit looks for a header/body split. Returns -1, nil if none is
// found. If the header/body split is found, it returns the location of the
// split (including the split newlines) and the line break to use with the
// header as a slice of bytes.
func searchForSplit(buf []byte, subpart bool) (pos int, crlf []byte) {
	if subpart {
		// a part may have no header at all, in which case it starts with
		// the blank line
		for _, s := range splits {
			if bytes.HasPrefix(buf, s[0:len(s)/2]) {
				pos = len(s) / 2
				crlf = s[0 : len(s)/2]
				return
			}
		}
	}

	// the earliest split wins so a body with other line breaks is not
	// mistaken for header
	pos = -1
	at := -1
	for _, s := range splits {
		if testPos := bytes.Index(buf, s); testPos > -1 && (at < 0 || testPos < at) {
			at = testPos
			pos = testPos + len(s)
			crlf = s[0 : len(s)/2]
		}
	}
	return
}

// splitHeadFromBody detects the split between the message header and the
// message body and the line break the message uses. It returns the header
// bytes, the line break, and a reader for the body.
func (pr *parser) splitHeadFromBody(r io.Reader, subpart bool) ([]byte, []byte, io.Reader, error) {
	p := make([]byte, pr.chunkSize)
	buf := &bytes.Buffer{}
	searched := 0
	for {
		n, err := r.Read(p)

		if pr.maxHeaderLen > 0 && n+buf.Len() > pr.maxHeaderLen {
			return nil, nil, nil, ErrLargeHeader
		}

		isEOF := false
		if errors.Is(err, io.EOF) {
			isEOF = true
		} else if err != nil {
			return nil, nil, nil, err
		}

		buf.Write(p[:n])

		pos, crlf := searchForSplit(buf.Bytes()[searched:], subpart && searched == 0)
		if pos >= 0 {
			pos += searched
			hdr := make([]byte, pos)
			copy(hdr, buf.Next(pos))

			var body io.Reader
			if _, isBytesReader := r.(*bytes.Reader); isBytesReader {
				// parts of a multipart are always read from a bytes.Reader,
				// so just finish the job
				if _, err := buf.ReadFrom(r); err != nil {
					return nil, nil, nil, err
				}
				body = bytes.NewReader(buf.Bytes())
			} else {
				// leave the rest of the original input unread
				body = &remainder{buf.Bytes(), r}
			}
			return hdr, crlf, body, nil
		}

		if isEOF {
			break
		}

		// the last 3 bytes might be the prefix to the split point
		searched = buf.Len() - 3
		if searched < 0 {
			searched = 0
		}
	}

	// No header/body split: the whole input is header. Pick the line break.
	for _, s := range splits {
		crlf := s[0 : len(s)/2]
		if bytes.Contains(buf.Bytes(), crlf) {
			return buf.Bytes(), crlf, nil, nil
		}
	}

	return buf.Bytes(), []byte("\x0a"), nil, nil
}

// looksLikeHeader reports whether the first line of b looks like the start of
// a header field.
func looksLikeHeader(b []byte) bool {
	if len(b) == 0 || b[0] == ' ' || b[0] == '\t' {
		return false
	}

	line := b
	if ix := bytes.IndexAny(b, "\r\n"); ix >= 0 {
		line = b[:ix]
	}

	colon := bytes.IndexByte(line, ':')
	return colon > 0 && !bytes.ContainsAny(line[:colon], " \t")
}

// parseToOpaque turns a reader into an Opaque. Junk at the start of the header
// is skipped rather than treated as a failure.
func (pr *parser) parseToOpaque(r io.Reader, subpart bool) (*Opaque, error) {
	hdr, crlf, body, err := pr.splitHeadFromBody(r, subpart)
	if err != nil {
		return nil, err
	}

	// a part with no blank line and no header is all body
	if body == nil && subpart && !looksLikeHeader(hdr) {
		return &Opaque{
			Header:   header.Header{Base: header.NewBase(header.Break(crlf))},
			Reader:   bytes.NewReader(hdr),
			noHeader: true,
		}, nil
	}

	head, err := header.Parse(hdr, header.Break(crlf))
	var bse *field.BadStartError
	if errors.As(err, &bse) {
		slog.Debug("skipped junk before header", "bytes", len(bse.BadStart))
	} else if err != nil {
		return nil, err
	}

	return &Opaque{Header: *head, Reader: body}, nil
}

// Parse will consume input from the given reader and return a Generic message
// containing the parsed content. Parse will proceed in two phases.
//
// During the first phase, the given io.Reader will be read in chunks at a time,
// as defined by the WithChunkSize() option (or by the default,
// DefaultChunkSize). Each chunk will be checked for a double line break of some
// kind (e.g., "\r\n\r\n" or "\n\n" are the most common). Once found, that line
// break is used to determine what line break the message will use for breaking
// up the header into fields. The rest of the input is the body of an *Opaque
// message. If the header grows past WithMaxHeaderLength() before the double
// line break is found, Parse fails with ErrLargeHeader.
//
// During the second phase, an *Opaque whose Content-type is multipart/* is
// split on its boundary and turned into a *Multipart. Every part goes through
// both phases itself until the WithMaxDepth() limit is reached. Parts must be
// smaller than WithMaxPartLength() or the parse fails with ErrLargePart.
//
// Bodies are never transfer decoded here. Use the transfer package to decode
// leaf bodies.
//
// Malformed input is handled leniently. Junk before the first header field is
// skipped, a multipart without a boundary is kept as an *Opaque, and a missing
// final boundary ends the last part at the end of input.
func Parse(r io.Reader, opts ...ParseOption) (Generic, error) {
	pr := defaultParser.clone()
	for _, opt := range opts {
		opt(pr)
	}

	msg, err := pr.parseToOpaque(r, false)
	if err != nil {
		return nil, err
	}

	return pr.parse(msg, 0)
}

// delimiter is a boundary line found in a multipart body. line is where the
// line itself begins and start is where the line break before it begins. end
// is just past the line break ending the line, except for the final
// delimiter, whose line break belongs to the epilogue.
type delimiter struct {
	start, line, end int
	final            bool
}

// findDelimiter returns the first delimiter line in data. A delimiter line is
// the dash boundary, "--" for the final one, any spaces and tabs, and a line
// break or the end of input. It starts a line, and the data always starts a
// line. Any of CRLF, LF, or CR break a line, whatever the header uses.
//
// It returns more when data ends before a delimiter line can be ruled in or
// out. When atEOF is set, more is never returned.
func findDelimiter(data, dash []byte, atEOF bool) (d delimiter, found, more bool) {
	for from := 0; ; {
		ix := bytes.Index(data[from:], dash)
		if ix < 0 {
			return d, false, !atEOF
		}

		p := from + ix
		from = p + 1
		if p > 0 && data[p-1] != '\n' && data[p-1] != '\r' {
			continue
		}

		q := p + len(dash)
		rest := data[q:]
		if !atEOF && (len(rest) == 0 || (len(rest) == 1 && rest[0] == '-')) {
			return d, false, true
		}

		d = delimiter{start: p, line: p}
		switch {
		case p >= 2 && data[p-2] == '\r' && data[p-1] == '\n':
			d.start = p - 2
		case p >= 1:
			d.start = p - 1
		}

		if bytes.HasPrefix(rest, []byte("--")) {
			d.final = true
			q += 2
		}

		for q < len(data) && (data[q] == ' ' || data[q] == '\t') {
			q++
		}

		if q == len(data) {
			if !atEOF {
				return d, false, true
			}
			d.end = q
			return d, true, false
		}

		var brLen int
		switch data[q] {
		case '\n':
			brLen = 1
		case '\r':
			switch {
			case q+1 < len(data) && data[q+1] == '\n':
				brLen = 2
			case q+1 == len(data) && !atEOF:
				return d, false, true
			default:
				brLen = 1
			}
		default:
			// --boundary followed by something else is just a line of text
			continue
		}

		d.end = q
		if !d.final {
			d.end += brLen
		}
		return d, true, false
	}
}

// parse implements the second phase of Parse.
func (pr *parser) parse(msg *Opaque, depth int) (Generic, error) {
	if pr.maxDepth >= 0 && depth >= pr.maxDepth {
		return msg, nil
	}

	pv, err := msg.GetContentType()
	if err != nil || pv.Type() != "multipart" {
		return msg, nil
	}

	if pv.Boundary() == "" {
		slog.Debug("multipart kept as a single part", "error", ErrNoBoundary)
		return msg, nil
	}

	if msg.Reader == nil {
		return msg, nil
	}

	// Every delimiter line is kept as found, including transport padding and
	// its line breaks, so the message can be written back out unchanged. The
	// line break before the first delimiter belongs to the prefix and the one
	// after the final delimiter belongs to the suffix.
	dash := []byte("--" + pv.Boundary())

	const (
		modeParts = iota
		modeEpilogue
	)

	sc := bufio.NewScanner(msg.Reader)
	sc.Buffer(make([]byte, pr.chunkSize), pr.maxPartLen)
	var (
		prefix, suffix, closing []byte
		delims                  [][]byte
		pending                 []byte
	)
	mode := modeParts
	awaitingPrefix := true
	sc.Split(
		scanner.MakeSplitFuncExitByAdvance(
			func(data []byte, atEOF bool) (advance int, token []byte, err error) {
				switch mode {
				case modeParts:
					d, found, more := findDelimiter(data, dash, atEOF)
					switch {
					case more:
						return 0, nil, nil

					case !found && awaitingPrefix:
						// no opening boundary at all, the body is one part
						prefix = nil
						delims = append(delims, nil)
						return len(data), data, bufio.ErrFinalToken

					case !found && len(data) == 0:
						// the input ended right after a delimiter line
						return 0, nil, nil

					case !found:
						// no final boundary, the rest is the last part
						delims = append(delims, pending)
						pending = nil
						return len(data), data, bufio.ErrFinalToken
					}

					if d.final {
						closing = bytes.Clone(data[d.start:d.end])
						suffix = []byte{}
						mode = modeEpilogue
					}

					if awaitingPrefix {
						// the prefix keeps the line break before the delimiter
						awaitingPrefix = false
						prefix = bytes.Clone(data[:d.line])
						if d.final {
							closing = bytes.Clone(data[d.line:d.end])
						} else {
							pending = bytes.Clone(data[d.line:d.end])
						}
						return d.end, nil, scanner.ErrContinue
					}

					delims = append(delims, pending)
					pending = nil
					if !d.final {
						pending = bytes.Clone(data[d.start:d.end])
					}
					return d.end, data[:d.start], nil

				case modeEpilogue:
					suffix = append(suffix, data...)
					return len(data), nil, nil

				default:
					panic("unexpected parser state")
				}
			},
		),
	)

	msgParts := make([]Part, 0, 10)
	for sc.Scan() {
		opMsg, err := pr.parseToOpaque(bytes.NewReader(sc.Bytes()), true)
		if err != nil {
			return msg, err
		}

		part, err := pr.parse(opMsg, depth+1)
		if err != nil {
			return msg, err
		}

		msgParts = append(msgParts, part)
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, ErrLargePart
		}
		return nil, err
	}

	if pending != nil {
		// a delimiter line ended the input, no part follows it
		closing = pending
	}

	return &Multipart{
		Header:  msg.Header,
		prefix:  prefix,
		suffix:  suffix,
		delims:  delims,
		closing: closing,
		parts:   msgParts,
	}, nil
}
