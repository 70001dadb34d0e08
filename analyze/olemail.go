package analyze

import (
	"errors"
	"sort"

	"github.com/zostay/mailsplit/compound"
	"github.com/zostay/mailsplit/dictionary"
	"github.com/zostay/mailsplit/mimewalk"
	"github.com/zostay/mailsplit/normalize"
	"github.com/zostay/mailsplit/result"
)

// OleMail analyzes the Outlook message file at path. A file that cannot be
// read as a compound file is reported through the processing_failure
// feature rather than an error.
func OleMail(path string, emit result.Emitter) (result.Features, error) {
	msg, err := compound.Open(path)
	var cfe *compound.ContainerFormatError
	if errors.As(err, &cfe) {
		f := result.Features{}
		f.Set(result.FeatureProcessingFailure, "Unable to parse OLE file: "+cfe.Err.Error())
		return f, nil
	} else if err != nil {
		return nil, err
	}

	return OleMessage(msg, emit), nil
}

// OleMessage analyzes an already opened Outlook message. A message without a
// body yields nothing.
func OleMessage(msg *compound.Message, emit result.Emitter) result.Features {
	f := result.Features{}

	body, ok := msg.Body()
	if !ok || body == "" {
		return f
	}

	if h, ok := msg.Header(); ok {
		if hdrs, ok := normalize.Normalize(h); ok {
			f = hdrs.Features()
		}
	}

	// the transport header is often missing or broken, but the same facts
	// are kept in properties of their own
	fallback := func(name string, get func() (string, bool)) {
		if f.Has(name) {
			return
		}
		if v, ok := get(); ok && v != "" {
			f.Set(name, v)
		}
	}
	fallback(normalize.FeatureFrom, msg.Sender)
	fallback(normalize.FeatureSubject, msg.Subject)
	fallback(normalize.FeatureTo, msg.To)
	fallback(normalize.FeatureCc, msg.CC)

	if !f.Has(normalize.FeatureDate) {
		if date, ok := msg.Date(); ok {
			t, tz, ok := normalize.ParseDate(date)
			if ok {
				f.Set(normalize.FeatureDate, t)
			}
			if tz != "" {
				f.Set(normalize.FeatureTimezone, tz)
			}
		}
	}

	hashes := map[string]struct{}{}
	count := 0
	for _, att := range msg.Attachments() {
		if len(att.Data) == 0 {
			continue
		}

		filename := att.Filename()
		features := result.Features{}
		features.Set(result.FeatureFilename, filename)

		emit.EmitChild(result.Child{
			Relationship:       result.Relationship{"action": "extracted"},
			Data:               att.Data,
			Features:           features,
			PasswordDictionary: dictionary.Build([][]byte{[]byte(body)}, filename),
		})

		hashes[result.SHA256(att.Data)] = struct{}{}
		count++
	}

	if count > 0 {
		f.Set(mimewalk.FeaturePartCount, count)
		sorted := make([]string, 0, len(hashes))
		for h := range hashes {
			sorted = append(sorted, h)
		}
		sort.Strings(sorted)
		f.AddStrings(mimewalk.FeaturePartHash, sorted...)
	}

	emit.EmitText([]byte(body))
	return f
}
