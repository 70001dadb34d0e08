// Package analyze holds the analyses run against a single input: the mail
// header analysis, the MIME decomposition, and the Outlook message analysis.
// Each one reports features as its return value and sends text blobs and
// extracted children to a result.Emitter.
//
// An analysis that finds its input is out of scope returns an error wrapping
// ErrOptOut. That is not a failure, just a statement that another analysis
// is better suited.
package analyze

import "errors"

// ErrOptOut is wrapped by errors returned for inputs an analysis does not
// handle.
var ErrOptOut = errors.New("input is not handled by this analysis")
