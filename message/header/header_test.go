package header_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/mailsplit/message/header"
	"github.com/zostay/mailsplit/message/header/field"
)

const sampleHeader = "Subject: =?utf-8?q?caf=C3=A9?=\n" +
	"From: Jane Smith <jane@example.com>\n" +
	"To: a@example.com,\n" +
	" b@example.com\n" +
	"Received: one\n" +
	"Received: two\n" +
	"Date: Wed, 3 May 2017 13:47:21 +0000\n" +
	"Content-Type: multipart/mixed; boundary=\"XYZ\"\n" +
	"Content-Disposition: attachment; filename=\"report.pdf\"\n" +
	"Content-Transfer-Encoding: base64\n"

func parseSample(t *testing.T) *header.Header {
	t.Helper()
	h, err := header.Parse([]byte(sampleHeader), header.LF)
	require.NoError(t, err)
	return h
}

func TestBreak(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\r\n", header.CRLF.String())
	assert.Equal(t, []byte("\n"), header.LF.Bytes())
	assert.Equal(t, []byte{}, header.Meh.Bytes())
}

func TestParse(t *testing.T) {
	t.Parallel()

	h := parseSample(t)
	assert.Equal(t, 9, h.Len())
	assert.Equal(t, header.LF, h.Break())

	to, err := h.Get("to")
	assert.NoError(t, err)
	assert.Equal(t, "a@example.com, b@example.com", to)

	assert.True(t, h.Has("RECEIVED"))
	assert.False(t, h.Has("Cc"))

	_, err = h.Get("Cc")
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	rcvd, err := h.Get("Received")
	assert.ErrorIs(t, err, header.ErrManyFields)
	assert.Equal(t, "one", rcvd)

	all, err := h.GetAll("Received")
	assert.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, all)
}

func TestParse_BadStart(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("junk line\nFrom: a@example.com\n"), header.LF)
	var bse *field.BadStartError
	require.ErrorAs(t, err, &bse)
	assert.Equal(t, []byte("junk line\n"), bse.BadStart)

	require.NotNil(t, h)
	from, ok := h.GetFirst(header.From)
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", from)
}

func TestHeader_Bytes(t *testing.T) {
	t.Parallel()

	h := parseSample(t)
	assert.Equal(t, sampleHeader+"\n", string(h.Bytes()))

	h.AddField("X-Test", "yes")
	assert.Equal(t, sampleHeader+"X-Test: yes\n\n", string(h.Bytes()))
}

func TestHeader_GetDecoded(t *testing.T) {
	t.Parallel()

	h := parseSample(t)

	raw, ok := h.GetFirst(header.Subject)
	assert.True(t, ok)
	assert.Equal(t, "=?utf-8?q?caf=C3=A9?=", raw)

	dec, ok := h.GetDecoded(header.Subject)
	assert.True(t, ok)
	assert.Equal(t, "café", dec)

	_, ok = h.GetDecoded("X-Missing")
	assert.False(t, ok)
}

func TestHeader_GetDate(t *testing.T) {
	t.Parallel()

	h := parseSample(t)
	d, err := h.GetDate()
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2017, 5, 3, 13, 47, 21, 0, time.UTC)))

	// cached value
	d2, err := h.GetDate()
	require.NoError(t, err)
	assert.True(t, d.Equal(d2))
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	tm, err := header.ParseTime("Mon Jan 02 15:04:05 2006 UTC")
	require.NoError(t, err)
	assert.Equal(t, 2006, tm.Year())

	tm, err = header.ParseTime("2019-12-03")
	require.NoError(t, err)
	assert.Equal(t, time.December, tm.Month())

	_, err = header.ParseTime("not a date at all")
	assert.Error(t, err)
}

func TestParseTime_ObsoleteZones(t *testing.T) {
	t.Parallel()

	want := time.Date(2017, 5, 3, 13, 47, 21, 0, time.UTC)
	for _, in := range []string{
		"Wed, 3 May 2017 09:47:21 EDT",
		"Wed, 3 May 2017 08:47:21 est",
		"Wed, 3 May 2017 06:47:21 PDT ",
		"Wed, 3 May 2017 05:47:21 PST",
		"Wed, 3 May 2017 07:47:21 MDT",
		"Wed, 3 May 2017 08:47:21 CDT",
		"Wed, 3 May 2017 13:47:21 GMT",
	} {
		tm, err := header.ParseTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(tm), "%s gave %s", in, tm.UTC())
	}
}

func TestHeader_ContentFields(t *testing.T) {
	t.Parallel()

	h := parseSample(t)

	mt, err := h.GetMediaType()
	assert.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mt)

	b, err := h.GetBoundary()
	assert.NoError(t, err)
	assert.Equal(t, "XYZ", b)

	fn, err := h.GetFilename()
	assert.NoError(t, err)
	assert.Equal(t, "report.pdf", fn)

	cte, err := h.GetTransferEncoding()
	assert.NoError(t, err)
	assert.Equal(t, "base64", cte)
}

func TestHeader_GetFilename_ContentTypeName(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("Content-Type: application/pdf; name=\"x.pdf\"\n"), header.LF)
	require.NoError(t, err)

	fn, err := h.GetFilename()
	assert.NoError(t, err)
	assert.Equal(t, "x.pdf", fn)

	_, err = h.GetBoundary()
	assert.ErrorIs(t, err, header.ErrNoSuchFieldParameter)
}

func TestAddresses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "jane@example.com", []string{"jane@example.com"}},
		{"display name", "Jane Smith <jane@example.com>", []string{"jane@example.com"}},
		{"list", "a@example.com, B <b@example.org>", []string{"a@example.com", "b@example.org"}},
		{"lenient", "Jane Smith <jane@example.com>, (broken", []string{"jane@example.com"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, header.Addresses(tt.in))
		})
	}
}
