package mimewalk_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/mailsplit/mimewalk"
	"github.com/zostay/mailsplit/result"
)

const invoiceMail = "garbage before the mail\n" +
	"From: alice@example.com\n" +
	"To: bob@example.com\n" +
	"Subject: invoice\n" +
	"MIME-Version: 1.0\n" +
	"Content-Type: multipart/mixed; boundary=\"b1\"\n" +
	"\n" +
	"This is a multi-part message in MIME format.\n" +
	"--b1\n" +
	"Content-Type: text/plain\n" +
	"\n" +
	"The password is s3cret for the archive.\n" +
	"--b1\n" +
	"Content-Type: application/zip; name=\"invoice.zip\"\n" +
	"Content-Transfer-Encoding: base64\n" +
	"\n" +
	"UEsDBGRhdGE=\n" +
	"--b1\n" +
	"Content-Type: image/png\n" +
	"Content-Disposition: attachment; filename=\"logo.png\"\n" +
	"Content-ID: <logo@example.com>\n" +
	"Content-Location: http://example.com/img/logo.png\n" +
	"\n" +
	"PNGDATA\n" +
	"--b1--\n" +
	"trailing junk\n"

func walk(t *testing.T, in string, cfg mimewalk.Config) (*mimewalk.Summary, *result.Result) {
	t.Helper()
	res := result.New()
	sum, err := mimewalk.Walk([]byte(in), cfg, res)
	require.NoError(t, err)
	return sum, res
}

func TestWalk(t *testing.T) {
	t.Parallel()

	sum, res := walk(t, invoiceMail, mimewalk.DefaultConfig())

	assert.Equal(t, "1.0", sum.Version)
	assert.Equal(t, "b1", sum.Boundary)
	assert.Equal(t, 3, sum.PartCount)
	assert.Equal(t, []string{"application/zip", "image/png", "text/plain"}, sum.PartTypes)
	assert.Len(t, sum.PartHashes, 3)
	assert.True(t, sum.TrailingData)
	assert.Equal(t, "trailing junk\n", string(sum.Epilogue))

	require.Len(t, res.Texts, 1)
	assert.Equal(t, "The password is s3cret for the archive.", string(res.Texts[0]))

	require.Len(t, res.Children, 2)

	zip := res.Children[0]
	assert.Equal(t, result.Relationship{"action": "extracted", "encoding": "base64"}, zip.Relationship)
	assert.Equal(t, []byte("PK\x03\x04data"), zip.Data)
	assert.Equal(t, []string{"application/zip"}, zip.Features.Strings(mimewalk.FeatureContentType))
	assert.Equal(t, []string{"base64"}, zip.Features.Strings(mimewalk.FeatureContentEncoding))
	assert.Equal(t, []string{"invoice.zip"}, zip.Features.Strings(result.FeatureFilename))
	assert.Contains(t, sum.PartHashes, result.SHA256(zip.Data))
	assert.Equal(t,
		"The\narchive\nfor\ninvoice\ninvoice.zip\npassword\ns3cret\nthe",
		string(zip.PasswordDictionary))

	png := res.Children[1]
	assert.Equal(t, result.Relationship{"action": "extracted", "encoding": "none"}, png.Relationship)
	assert.Equal(t, []byte("PNGDATA"), png.Data)
	assert.False(t, png.Features.Has(mimewalk.FeatureContentEncoding))
	assert.Equal(t, []string{"<logo@example.com>"}, png.Features.Strings(mimewalk.FeatureContentID))
	assert.Equal(t, []string{"http://example.com/img/logo.png"}, png.Features.Strings(mimewalk.FeatureContentLocation))
	assert.Equal(t, []string{"logo.png"}, png.Features.Strings(result.FeatureFilename))
	assert.Nil(t, png.PasswordDictionary)
}

func TestWalk_AppendedDataAsChild(t *testing.T) {
	t.Parallel()

	cfg := mimewalk.DefaultConfig()
	cfg.AppendedDataAsChild = true
	_, res := walk(t, invoiceMail, cfg)

	require.Len(t, res.Children, 3)
	epilogue := res.Children[2]
	assert.Equal(t, result.Relationship{"action": "extracted", "type": "epilogue"}, epilogue.Relationship)
	assert.Equal(t, "trailing junk\n", string(epilogue.Data))
}

func TestWalk_WithoutMailBodies(t *testing.T) {
	t.Parallel()

	cfg := mimewalk.DefaultConfig()
	cfg.ReportMailBodies = false
	sum, res := walk(t, invoiceMail, cfg)

	assert.Equal(t, 3, sum.PartCount)
	assert.Empty(t, res.Texts)
	require.Len(t, res.Children, 2)
	assert.Nil(t, res.Children[0].PasswordDictionary)
}

func TestWalk_ContentTypeFilter(t *testing.T) {
	t.Parallel()

	cfg := mimewalk.DefaultConfig()
	cfg.ContentTypeFilter = append(cfg.ContentTypeFilter, "image/png")
	sum, res := walk(t, invoiceMail, cfg)

	assert.Equal(t, 3, sum.PartCount)
	assert.Len(t, sum.PartTypes, 3)
	require.Len(t, res.Children, 1)
	assert.Equal(t, []string{"application/zip"}, res.Children[0].Features.Strings(mimewalk.FeatureContentType))
}

func TestWalk_BlankPart(t *testing.T) {
	t.Parallel()

	in := "MIME-Version: 1.0\n" +
		"Content-Type: multipart/alternative; boundary=b\n" +
		"\n" +
		"--b\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"   \n" +
		"--b\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"real words here\n" +
		"--b--\n"

	sum, res := walk(t, in, mimewalk.DefaultConfig())

	assert.Equal(t, 2, sum.PartCount)
	assert.Equal(t, []string{"text/plain"}, sum.PartTypes)
	assert.Equal(t, []string{result.SHA256([]byte("real words here"))}, sum.PartHashes)
	require.Len(t, res.Texts, 1)
	assert.Equal(t, "real words here", string(res.Texts[0]))
	assert.Empty(t, res.Children)
	assert.False(t, sum.TrailingData)
}

func TestWalk_EmptyPart(t *testing.T) {
	t.Parallel()

	in := "MIME-Version: 1.0\n" +
		"Content-Type: multipart/mixed; boundary=b\n" +
		"\n" +
		"--b\n" +
		"Content-Type: application/octet-stream\n" +
		"\n" +
		"\n" +
		"--b--\n"

	sum, res := walk(t, in, mimewalk.DefaultConfig())

	assert.Equal(t, 0, sum.PartCount)
	assert.Empty(t, sum.PartTypes)
	assert.Empty(t, sum.PartHashes)
	assert.Empty(t, res.Children)
	assert.Empty(t, res.Texts)
}

func TestWalk_AttachedMessage(t *testing.T) {
	t.Parallel()

	in := "MIME-Version: 1.0\n" +
		"Content-Type: multipart/mixed; boundary=outer\n" +
		"\n" +
		"--outer\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"see forwarded\n" +
		"--outer\n" +
		"Content-Type: message/rfc822\n" +
		"\n" +
		"From: eve@example.com\n" +
		"Subject: fwd\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"inner body text\n" +
		"--outer--\n"

	sum, res := walk(t, in, mimewalk.DefaultConfig())

	assert.Equal(t, 3, sum.PartCount)
	assert.Equal(t, []string{"message/rfc822", "text/plain"}, sum.PartTypes)

	require.Len(t, res.Texts, 2)
	assert.Equal(t, "see forwarded", string(res.Texts[0]))
	assert.Equal(t, "inner body text", string(res.Texts[1]))

	require.Len(t, res.Children, 1)
	attached := res.Children[0]
	assert.Equal(t, "none", attached.Relationship["encoding"])
	assert.Equal(t,
		"Content-Type: message/rfc822\n\n"+
			"From: eve@example.com\n"+
			"Subject: fwd\n"+
			"Content-Type: text/plain\n"+
			"\n"+
			"inner body text",
		string(attached.Data))
}

func TestWalk_HTMLOnly(t *testing.T) {
	t.Parallel()

	in := "MIME-Version: 1.0\n" +
		"Content-Type: text/html; charset=utf-8\n" +
		"\n" +
		"<html><head><style>p {color: red}</style><script>var x = 1;</script></head>" +
		"<body><p>Your code is hunter42</p></body></html>\n"

	sum, res := walk(t, in, mimewalk.DefaultConfig())

	assert.Equal(t, 1, sum.PartCount)
	assert.Equal(t, "", sum.Boundary)
	require.Len(t, res.Texts, 1)
	assert.Equal(t, "Your code is hunter42", strings.TrimSpace(string(res.Texts[0])))
	assert.Empty(t, res.Children)
}

func TestWalk_HTMLBodyDictionary(t *testing.T) {
	t.Parallel()

	in := "MIME-Version: 1.0\n" +
		"Content-Type: multipart/mixed; boundary=b\n" +
		"\n" +
		"--b\n" +
		"Content-Type: text/html\n" +
		"\n" +
		"<p>Open with passphrase tulips99</p>\n" +
		"--b\n" +
		"Content-Type: application/octet-stream\n" +
		"Content-Disposition: attachment; filename=\"=?UTF-8?B?cmVwb3J0LnBkZg==?=\"\n" +
		"Content-Transfer-Encoding: base64\n" +
		"\n" +
		"JVBERi0xLjQgZmFrZQ==\n" +
		"--b--\n"

	_, res := walk(t, in, mimewalk.DefaultConfig())

	require.Len(t, res.Children, 1)
	pdf := res.Children[0]
	assert.Equal(t, []string{"report.pdf"}, pdf.Features.Strings(result.FeatureFilename))
	assert.Equal(t, []byte("%PDF-1.4 fake"), pdf.Data)
	assert.Equal(t,
		"Open\npassphrase\nreport\nreport.pdf\ntulips99\nwith",
		string(pdf.PasswordDictionary))
}

func TestWalk_DictionaryNeedsEarlierBody(t *testing.T) {
	t.Parallel()

	in := "MIME-Version: 1.0\n" +
		"Content-Type: multipart/mixed; boundary=b\n" +
		"\n" +
		"--b\n" +
		"Content-Type: application/zip\n" +
		"\n" +
		"PK\x03\x04\n" +
		"--b\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"password follows the attachment\n" +
		"--b--\n"

	_, res := walk(t, in, mimewalk.DefaultConfig())

	require.Len(t, res.Children, 1)
	assert.Nil(t, res.Children[0].PasswordDictionary)
	assert.Len(t, res.Texts, 1)
}

func TestWalk_MagicWithoutApplicationType(t *testing.T) {
	t.Parallel()

	in := "MIME-Version: 1.0\n" +
		"Content-Type: multipart/mixed; boundary=b\n" +
		"\n" +
		"--b\n" +
		"\n" +
		"unlock code: zebra\n" +
		"--b\n" +
		"Content-Type: image/jpeg\n" +
		"\n" +
		"Rar!archive\n" +
		"--b--\n"

	_, res := walk(t, in, mimewalk.DefaultConfig())

	require.Len(t, res.Texts, 1)
	require.Len(t, res.Children, 1)
	assert.Equal(t, "code\nunlock\nzebra", string(res.Children[0].PasswordDictionary))
}

func TestWalk_OptOut(t *testing.T) {
	t.Parallel()

	_, err := mimewalk.Walk([]byte("no header lines in here\njust text\n"), mimewalk.DefaultConfig(), result.New())
	assert.ErrorIs(t, err, mimewalk.ErrNoMimeSignature)

	late := strings.Repeat("x", mimewalk.DefaultScanDepth) + "\nFrom: a@example.com\n\nbody\n"
	_, err = mimewalk.Walk([]byte(late), mimewalk.DefaultConfig(), result.New())
	assert.ErrorIs(t, err, mimewalk.ErrNoMimeSignature)

	_, err = mimewalk.Walk([]byte("From: a@example.com\nSubject: hi\n\nbody\n"), mimewalk.DefaultConfig(), result.New())
	assert.ErrorIs(t, err, mimewalk.ErrNotMimeVersioned)
}

func TestFindStart(t *testing.T) {
	t.Parallel()

	start, ok := mimewalk.FindStart([]byte("junk; here\r\nX-Thing: value\r\n"))
	assert.True(t, ok)
	assert.Equal(t, 12, start)

	_, ok = mimewalk.FindStart([]byte("Header: ;starts with a semicolon\n"))
	assert.False(t, ok)
}

func TestSummary_Features(t *testing.T) {
	t.Parallel()

	sum, _ := walk(t, invoiceMail, mimewalk.DefaultConfig())
	f := sum.Features()

	assert.Equal(t, []string{"1.0"}, f.Strings(mimewalk.FeatureVersion))
	assert.Equal(t, []string{"b1"}, f.Strings(mimewalk.FeatureBoundary))
	assert.Equal(t, []string{"3"}, f.Strings(mimewalk.FeaturePartCount))
	assert.Equal(t, sum.PartTypes, f.Strings(mimewalk.FeaturePartType))
	assert.Equal(t, []string{mimewalk.TagTrailingData}, f.Strings(result.FeatureTag))

	empty := (&mimewalk.Summary{Version: "1.0"}).Features()
	assert.False(t, empty.Has(mimewalk.FeatureBoundary))
	assert.False(t, empty.Has(result.FeatureTag))
	assert.Equal(t, []string{"0"}, empty.Strings(mimewalk.FeaturePartCount))
}

func TestWalk_CRLF(t *testing.T) {
	t.Parallel()

	sum, res := walk(t, strings.ReplaceAll(invoiceMail, "\n", "\r\n"), mimewalk.DefaultConfig())

	assert.Equal(t, 3, sum.PartCount)
	require.Len(t, res.Children, 2)
	assert.Equal(t, []byte("PK\x03\x04data"), res.Children[0].Data)
	assert.True(t, bytes.HasPrefix(sum.Epilogue, []byte("trailing junk")))
}

func TestWalk_IrregularBoundaryLines(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"MIME-Version: 1.0\n" +
			"Content-Type: multipart/mixed; boundary=b\n" +
			"\n" +
			"--b \n" +
			"Content-Type: text/plain\n\nthe key is melon42\n" +
			"--b  \n" +
			"Content-Type: application/zip; name=\"x.zip\"\n\nPK\x03\x04\n" +
			"--b--\n",
		"MIME-Version: 1.0\n" +
			"Content-Type: multipart/mixed; boundary=b\n" +
			"\n" +
			"--b\r\n" +
			"Content-Type: text/plain\r\n\r\nthe key is melon42\r\n" +
			"--b\r\n" +
			"Content-Type: application/zip; name=\"x.zip\"\r\n\r\nPK\x03\x04\r\n" +
			"--b--\r\n",
	} {
		sum, res := walk(t, in, mimewalk.DefaultConfig())

		assert.Equal(t, 2, sum.PartCount)
		assert.Equal(t, []string{"application/zip", "text/plain"}, sum.PartTypes)
		require.Len(t, res.Children, 1)
		assert.Equal(t, "PK\x03\x04", string(res.Children[0].Data))
		assert.Contains(t, string(res.Children[0].PasswordDictionary), "melon42")
	}
}
