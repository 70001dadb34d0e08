// Package dictionary builds password candidate lists from mail bodies.
//
// Encrypted attachments in phishing mail usually come with the password
// written somewhere in the mail text, or the password is the attachment
// name. A dictionary built from the words of the bodies and the filename
// gives downstream tools a short list of candidates to try.
package dictionary
