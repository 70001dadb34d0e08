package compound

import (
	"path"
	"strings"
)

// properties maps property tags, as four upper case hex digits, to labels.
var properties = map[string]string{
	"001A": "Message class",
	"0037": "Subject",
	"003D": "Subject prefix",
	"0040": "Received by name",
	"0042": "Sent repr name",
	"0044": "Rcvd repr name",
	"004D": "Org author name",
	"0050": "Reply rcipnt names",
	"005A": "Org sender name",
	"0064": "Sent repr adrtype",
	"0065": "Sent repr email",
	"0070": "Topic",
	"0075": "Rcvd by adrtype",
	"0076": "Rcvd by email",
	"0077": "Repr adrtype",
	"0078": "Repr email",
	"007D": "Message header",
	"0C1A": "Sender name",
	"0C1E": "Sender adr type",
	"0C1F": "Sender email",
	"0E02": "Display BCC",
	"0E03": "Display CC",
	"0E04": "Display To",
	"0E1D": "Subject (normalized)",
	"0E28": "Recvd account1 (uncertain)",
	"0E29": "Recvd account2 (uncertain)",
	"1000": "Message body",
	"1008": "RTF sync body tag",
	"1035": "Message ID (uncertain)",
	"1046": "Sender email (uncertain)",
	"3001": "Display name",
	"3002": "Address type",
	"3003": "Email address",
	"39FE": "7-bit email (uncertain)",
	"39FF": "7-bit display name",
	// attachments
	"3701": "Attachment data",
	"3703": "Attachment extension",
	"3704": "Attachment short filename",
	"3707": "Attachment long filename",
	"370E": "Attachment mime tag",
	"3712": "Attachment ID (uncertain)",
	// address book
	"3A00": "Account",
	"3A02": "Callback phone no",
	"3A05": "Generation",
	"3A06": "Given name",
	"3A08": "Business phone",
	"3A09": "Home phone",
	"3A0A": "Initials",
	"3A0B": "Keyword",
	"3A0C": "Language",
	"3A0D": "Location",
	"3A11": "Surname",
	"3A15": "Postal address",
	"3A16": "Company name",
	"3A17": "Title",
	"3A18": "Department",
	"3A19": "Office location",
	"3A1A": "Primary phone",
	"3A1B": "Business phone 2",
	"3A1C": "Mobile phone",
	"3A1D": "Radio phone no",
	"3A1E": "Car phone no",
	"3A1F": "Other phone",
	"3A20": "Transmit dispname",
	"3A21": "Pager",
	"3A22": "User certificate",
	"3A23": "Primary Fax",
	"3A24": "Business Fax",
	"3A25": "Home Fax",
	"3A26": "Country",
	"3A27": "Locality",
	"3A28": "State/Province",
	"3A29": "Street address",
	"3A2A": "Postal Code",
	"3A2B": "Post Office Box",
	"3A2C": "Telex",
	"3A2D": "ISDN",
	"3A2E": "Assistant phone",
	"3A2F": "Home phone 2",
	"3A30": "Assistant",
	"3A44": "Middle name",
	"3A45": "Dispname prefix",
	"3A46": "Profession",
	"3A48": "Spouse name",
	"3A4B": "TTYTTD radio phone",
	"3A4C": "FTP site",
	"3A4E": "Manager name",
	"3A4F": "Nickname",
	"3A51": "Business homepage",
	"3A57": "Company main phone",
	"3A58": "Childrens names",
	"3A59": "Home City",
	"3A5A": "Home Country",
	"3A5B": "Home Postal Code",
	"3A5C": "Home State/Provnce",
	"3A5D": "Home Street",
	"3A5F": "Other adr City",
	"3A60": "Other adr Country",
	"3A61": "Other adr PostCode",
	"3A62": "Other adr Province",
	"3A63": "Other adr Street",
	"3A64": "Other adr PO box",
	"3FF7": "Server (uncertain)",
	"3FF8": "Creator1 (uncertain)",
	"3FFA": "Creator2 (uncertain)",
	"3FFC": "To email (uncertain)",
	"403D": "To adrtype (uncertain)",
	"403E": "To email (uncertain)",
	"5FF6": "To (uncertain)",
}

// PropertyName returns the label of a property tag such as "0037" or
// "__substg1.0_0037001F". Only the four hex digits of the tag matter, so a
// stream name or a full stream path may be passed directly.
func PropertyName(tag string) (string, bool) {
	tag = strings.TrimPrefix(strings.ToLower(path.Base(tag)), strings.ToLower(substgPrefix))
	if len(tag) < 4 {
		return "", false
	}

	name, ok := properties[strings.ToUpper(tag[:4])]
	return name, ok
}
