package header

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/zostay/mailsplit/message/header/field"
	"github.com/zostay/mailsplit/message/header/param"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned by Header methods when the
	// operation being performed failed because the header exists, but a
	// sub-field of the header does not exist.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields is returned by Header methods when the operation
	// being performed found more than one field with the given name. The
	// first value is still returned with this error.
	ErrManyFields = errors.New("many header fields found")
)

// Header field names used by this module. Lookups are case-insensitive, so
// the capitalization here only matters for fields this module creates.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	ContentDisposition      = "Content-disposition"
	ContentID               = "Content-id"
	ContentLocation         = "Content-location"
	ContentTransferEncoding = "Content-transfer-encoding"
	ContentType             = "Content-type"
	Date                    = "Date"
	From                    = "From"
	MessageID               = "Message-id"
	MIMEVersion             = "Mime-version"
	ReturnPath              = "Return-path"
	Subject                 = "Subject"
	To                      = "To"
	UserAgent               = "User-agent"
	XMailer                 = "X-mailer"
)

// UnixDateWithEarlyYear is a date format seen in the wild that the usual
// parsers have trouble with.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// Header wraps a Base with getters that interpret field bodies. Parsed
// parameter values and times are cached on first use.
type Header struct {
	Base

	// valueCache holds parsed values of singular fields keyed by lower-case
	// name. Only immutable values are stored here.
	valueCache map[string]any
}

func (h *Header) getValue(name string) (any, bool) {
	v, found := h.valueCache[strings.ToLower(name)]
	return v, found
}

func (h *Header) setValue(name string, value any) {
	if h.valueCache == nil {
		h.valueCache = make(map[string]any)
	}
	h.valueCache[strings.ToLower(name)] = value
}

// Has returns true if at least one field with the given name is present.
func (h *Header) Has(name string) bool {
	return len(h.GetIndexesNamed(name)) > 0
}

// Get retrieves the raw, unfolded body of the first field with the given name.
//
// If the named field is not set in the header, it returns an empty string with
// ErrNoSuchField. If more than one field is set, the first body is returned
// with ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}

	b := h.GetField(ixs[0]).Body()
	if len(ixs) > 1 {
		return b, ErrManyFields
	}

	return b, nil
}

// GetFirst returns the body of the first field with the given name and whether
// such a field exists.
func (h *Header) GetFirst(name string) (string, bool) {
	b, err := h.Get(name)
	return b, err == nil || errors.Is(err, ErrManyFields)
}

// GetDecoded works like GetFirst, but decodes any RFC 2047 encoded-words. If
// the decoding fails, the raw body is returned.
func (h *Header) GetDecoded(name string) (string, bool) {
	b, ok := h.GetFirst(name)
	if !ok {
		return "", false
	}
	return field.DecodeOrRaw(b), true
}

// GetAll fetches the raw bodies of every field with the given name, in header
// order. It returns nil with ErrNoSuchField if there are none.
func (h *Header) GetAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}
	return bs, nil
}

// obsZones are the North American zone names of RFC 5322 section 4.3. Go
// would parse them as unknown zones with a zero offset.
var obsZones = map[string]string{
	"EST": "-0500",
	"EDT": "-0400",
	"CST": "-0600",
	"CDT": "-0500",
	"MST": "-0700",
	"MDT": "-0600",
	"PST": "-0800",
	"PDT": "-0700",
}

// withNumericZone replaces a trailing obsolete zone name with its offset.
func withNumericZone(body string) string {
	trimmed := strings.TrimRight(body, " \t")
	i := strings.LastIndexAny(trimmed, " \t")
	if i < 0 {
		return body
	}

	if off, ok := obsZones[strings.ToUpper(trimmed[i+1:])]; ok {
		return trimmed[:i+1] + off
	}
	return body
}

// ParseTime parses a date field body. The RFC 5322 format is tried first,
// followed by a much more liberal parser and a few odd formats seen in the
// wild. The obsolete North American zone names get their proper offsets.
func ParseTime(body string) (time.Time, error) {
	body = withNumericZone(body)

	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetTime gets the named date field as a time.Time.
//
// It returns the zero value and ErrNoSuchField if the field does not exist,
// or a parse error if the body cannot be read as a date. When more than one
// field is present, the first is used.
func (h *Header) GetTime(name string) (time.Time, error) {
	if v, found := h.getValue(name); found {
		if t, isTime := v.(time.Time); isTime {
			return t, nil
		}
	}

	body, ok := h.GetFirst(name)
	if !ok {
		return time.Time{}, ErrNoSuchField
	}

	t, err := ParseTime(body)
	if err != nil {
		return t, err
	}

	h.setValue(name, t)
	return t, nil
}

// GetDate returns the Date field as a time.Time.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// GetParamValue returns the named field parsed as a param.Value. The first
// field wins if there are several.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	if v, found := h.getValue(name); found {
		if pv, isPV := v.(*param.Value); isPV {
			return pv.Clone(), nil
		}
	}

	body, ok := h.GetFirst(name)
	if !ok {
		return nil, ErrNoSuchField
	}

	pv, err := param.Parse(body)
	if err != nil {
		return nil, err
	}

	h.setValue(name, pv)
	return pv.Clone(), nil
}

// GetContentType returns the Content-type field as a param.Value.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// GetMediaType returns the lower-cased MIME type of the Content-type field.
func (h *Header) GetMediaType() (string, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	return pv.MediaType(), nil
}

// GetBoundary returns the boundary parameter of the Content-type field.
func (h *Header) GetBoundary() (string, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}

	if b := pv.Boundary(); b != "" {
		return b, nil
	}
	return "", ErrNoSuchFieldParameter
}

// GetFilename returns the filename of the part. The filename parameter of
// Content-disposition is preferred, with the name parameter of Content-type
// as the fallback. The value is returned without encoded-word decoding.
func (h *Header) GetFilename() (string, error) {
	if pv, err := h.GetParamValue(ContentDisposition); err == nil {
		if fn := pv.Filename(); fn != "" {
			return fn, nil
		}
	}

	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}

	if fn := pv.Parameter(param.Name); fn != "" {
		return fn, nil
	}
	return "", ErrNoSuchFieldParameter
}

// GetTransferEncoding returns the Content-transfer-encoding exactly as
// written in the header.
func (h *Header) GetTransferEncoding() (string, error) {
	b, ok := h.GetFirst(ContentTransferEncoding)
	if !ok {
		return "", ErrNoSuchField
	}
	return b, nil
}
