package mimewalk

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
)

// htmlText returns the text a reader of the HTML would see. Scripts and
// styles are dropped along with the markup.
func htmlText(b []byte) []byte {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil
	}

	doc.Find("script, style, noscript").Remove()
	return []byte(doc.Text())
}
