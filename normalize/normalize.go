package normalize

import (
	"strings"
	"time"

	"github.com/zostay/mailsplit/message/header"
	"github.com/zostay/mailsplit/message/header/field"
	"github.com/zostay/mailsplit/result"
)

// Feature names produced by Features.
const (
	FeatureFrom                 = "mail_from"
	FeatureTo                   = "mail_to"
	FeatureCc                   = "mail_cc"
	FeatureBcc                  = "mail_bcc"
	FeatureReturnPath           = "mail_return_path"
	FeatureAddress              = "mail_address"
	FeatureDomain               = "mail_domain"
	FeatureMessageID            = "mail_message_id"
	FeatureSubject              = "mail_subject"
	FeatureAgent                = "mail_agent"
	FeatureDate                 = "mail_date"
	FeatureTimezone             = "mail_timezone"
	FeatureExtensionHeader      = "mail_extension_header"
	FeatureExtensionHeaderValue = "mail_extension_header_value"
)

// Extension is a decoded X- header.
type Extension struct {
	Name  string
	Value string
}

// Headers is the normalized view of a mail header.
type Headers struct {
	From       []string
	To         []string
	Cc         []string
	Bcc        []string
	ReturnPath []string

	// Addresses and Domains are parallel. They come from a separate pass
	// over the address lists, so they need not line up with the entries.
	Addresses []string
	Domains   []string

	MessageID string
	Subject   string
	Agent     string

	// Date is in UTC and only meaningful if HasDate is true. Timezone holds
	// the zone token from the end of the Date header, if any.
	Date     time.Time
	HasDate  bool
	Timezone string

	Extensions []Extension
}

type fieldKind int

const (
	addressField fieldKind = iota
	dateField
	passthroughField
)

type fieldHandler struct {
	kind   fieldKind
	target string
}

// handlers maps lower-case header names to how they are normalized.
// Extension headers are handled by prefix on top of this.
var handlers = map[string]fieldHandler{
	"from":            {addressField, FeatureFrom},
	"to":              {addressField, FeatureTo},
	"cc":              {addressField, FeatureCc},
	"bcc":             {addressField, FeatureBcc},
	"return-path":     {addressField, FeatureReturnPath},
	"x-rcpt-to":       {addressField, FeatureTo},
	"x-envelope-to":   {addressField, FeatureTo},
	"x-envelope-from": {addressField, FeatureFrom},
	"date":            {dateField, FeatureDate},
	"message-id":      {passthroughField, FeatureMessageID},
	"subject":         {passthroughField, FeatureSubject},
	"x-mailer":        {passthroughField, FeatureAgent},
	"user-agent":      {passthroughField, FeatureAgent},
}

func isExtension(name string) bool {
	return len(name) > 2 && strings.EqualFold(name[:2], "x-")
}

// Normalize builds the normalized view of h. It returns nil and false if h
// has no From field with a value, as such a header is not taken to be a mail
// message.
func Normalize(h *header.Header) (*Headers, bool) {
	if from, ok := h.GetFirst(header.From); !ok || from == "" {
		return nil, false
	}

	n := &Headers{}
	seen := make(map[string]bool)
	var userAgent, xMailer string
	var hasUserAgent bool

	for _, f := range h.ListFields() {
		name := f.Name()
		lname := strings.ToLower(name)

		if isExtension(name) {
			n.Extensions = append(n.Extensions, Extension{
				Name:  name,
				Value: field.DecodeOrRaw(f.Body()),
			})
		}

		hdl, ok := handlers[lname]
		if !ok {
			continue
		}

		switch hdl.kind {
		case addressField:
			n.addAddresses(hdl.target, f.Body())

		case dateField:
			if seen[lname] {
				continue
			}
			seen[lname] = true

			n.Date, n.Timezone, n.HasDate = ParseDate(f.Body())

		case passthroughField:
			if seen[lname] {
				continue
			}
			seen[lname] = true

			v := field.DecodeOrRaw(f.Body())
			switch lname {
			case "message-id":
				n.MessageID = v
			case "subject":
				n.Subject = v
			case "x-mailer":
				xMailer = v
			case "user-agent":
				userAgent, hasUserAgent = v, true
			}
		}
	}

	n.Agent = xMailer
	if hasUserAgent {
		n.Agent = userAgent
	}

	return n, true
}

func (n *Headers) addAddresses(target, body string) {
	if body == "" {
		return
	}

	entries := SplitAddressList(field.DecodeOrRaw(body))
	switch target {
	case FeatureFrom:
		n.From = append(n.From, entries...)
	case FeatureTo:
		n.To = append(n.To, entries...)
	case FeatureCc:
		n.Cc = append(n.Cc, entries...)
	case FeatureBcc:
		n.Bcc = append(n.Bcc, entries...)
	case FeatureReturnPath:
		n.ReturnPath = append(n.ReturnPath, entries...)
	}

	addrs, domains := AddressDomains(entries)
	n.Addresses = append(n.Addresses, addrs...)
	n.Domains = append(n.Domains, domains...)
}

// Features returns the normalized view as a feature map. Empty values are
// left out.
func (n *Headers) Features() result.Features {
	f := result.Features{}

	f.AddStrings(FeatureFrom, n.From...)
	f.AddStrings(FeatureTo, n.To...)
	f.AddStrings(FeatureCc, n.Cc...)
	f.AddStrings(FeatureBcc, n.Bcc...)
	f.AddStrings(FeatureReturnPath, n.ReturnPath...)
	f.AddStrings(FeatureAddress, n.Addresses...)
	f.AddStrings(FeatureDomain, n.Domains...)
	f.AddStrings(FeatureMessageID, n.MessageID)
	f.AddStrings(FeatureSubject, n.Subject)
	f.AddStrings(FeatureAgent, n.Agent)
	f.AddStrings(FeatureTimezone, n.Timezone)

	if n.HasDate {
		f.Add(FeatureDate, n.Date)
	}

	for _, ext := range n.Extensions {
		f.Add(FeatureExtensionHeader, ext.Name)
		f.AddLabelled(FeatureExtensionHeaderValue, ext.Name, ext.Value)
	}

	return f
}
