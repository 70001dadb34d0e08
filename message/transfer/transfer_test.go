package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/mailsplit/message/header"
	"github.com/zostay/mailsplit/message/transfer"
)

const dec = `1 Timothy 6:10 - For the love of money is a root of all kinds of evils. It is through this craving that some have wandered away from the faith and pierced themselves with many pangs.`
const enc = `MSBUaW1vdGh5IDY6MTAgLSBGb3IgdGhlIGxvdmUgb2YgbW9uZXkgaXMgYSByb290IG9mIGFsbCBr
aW5kcyBvZiBldmlscy4gSXQgaXMgdGhyb3VnaCB0aGlzIGNyYXZpbmcgdGhhdCBzb21lIGhhdmUg
d2FuZGVyZWQgYXdheSBmcm9tIHRoZSBmYWl0aCBhbmQgcGllcmNlZCB0aGVtc2VsdmVzIHdpdGgg
bWFueSBwYW5ncy4=`

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cte  string
		in   string
		want string
	}{
		{"base64", "base64", enc, dec},
		{"base64 upper case", " BASE64 ", "aGVsbG8=", "hello"},
		{"quoted-printable", "quoted-printable", "caf=C3=A9 =\nau lait", "café au lait"},
		{"7bit", "7bit", "plain =41", "plain =41"},
		{"none", "", "plain", "plain"},
		{"unknown", "x-uuencode", "begin 644", "begin 644"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := transfer.Decode(tt.cte, []byte(tt.in))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestDecodeBase64_Lenient(t *testing.T) {
	t.Parallel()

	out, err := transfer.DecodeBase64([]byte("aGVs\r\n bG8*"))
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	// missing padding
	out, err = transfer.DecodeBase64([]byte("aGVsbG8"))
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	// text after padding is ignored
	out, err = transfer.DecodeBase64([]byte("aGk=\n\n--boundary"))
	assert.NoError(t, err)
	assert.Equal(t, "hi", string(out))

	out, err = transfer.DecodeBase64([]byte("aGVsbG8hZ"))
	assert.Error(t, err)
	assert.Equal(t, "hello!", string(out))
}

func TestDecodeQuotedPrintable_Malformed(t *testing.T) {
	t.Parallel()

	in := []byte("bad \x01 byte")
	out, err := transfer.DecodeQuotedPrintable(in)
	assert.Error(t, err)
	assert.Equal(t, in, out)
}

func TestApplyTransferDecoding(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("Content-Transfer-Encoding: base64\n"), header.LF)
	require.NoError(t, err)

	out, err := transfer.ApplyTransferDecoding(h, []byte(enc))
	assert.NoError(t, err)
	assert.Equal(t, dec, string(out))

	h, err = header.Parse([]byte("Content-Type: multipart/mixed; boundary=x\nContent-Transfer-Encoding: base64\n"), header.LF)
	require.NoError(t, err)

	out, err = transfer.ApplyTransferDecoding(h, []byte("aGVsbG8="))
	assert.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", string(out))
}
