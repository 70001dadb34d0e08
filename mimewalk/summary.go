package mimewalk

import "github.com/zostay/mailsplit/result"

// Feature names produced by Walk, on the message and on its children.
const (
	FeatureVersion         = "mime_version"
	FeatureBoundary        = "mime_boundary"
	FeaturePartType        = "mime_part_type"
	FeaturePartHash        = "mime_part_hash"
	FeaturePartCount       = "mime_part_count"
	FeatureContentType     = "mime_content_type"
	FeatureContentEncoding = "mime_content_encoding"
	FeatureContentLocation = "mime_content_location"
	FeatureContentID       = "mime_content_id"

	// TagTrailingData is the tag set on messages with data after the final
	// boundary.
	TagTrailingData = "trailing_data"
)

// Summary describes a walked message.
type Summary struct {
	// Version is the raw MIME-Version field.
	Version string

	// Boundary is the boundary of the top-level multipart, if any.
	Boundary string

	// PartTypes and PartHashes are the distinct content types and SHA-256
	// digests of the payloads found, sorted.
	PartTypes  []string
	PartHashes []string

	// PartCount counts the leaf parts with a payload, whether or not they
	// were emitted.
	PartCount int

	// TrailingData is set when non-blank data follows the final boundary.
	// Epilogue holds that data.
	TrailingData bool
	Epilogue     []byte
}

// Features returns the summary as message features.
func (s *Summary) Features() result.Features {
	f := result.Features{}
	f.Set(FeatureVersion, s.Version)
	if s.Boundary != "" {
		f.Set(FeatureBoundary, s.Boundary)
	}
	f.AddStrings(FeaturePartType, s.PartTypes...)
	f.AddStrings(FeaturePartHash, s.PartHashes...)
	f.Set(FeaturePartCount, s.PartCount)
	if s.TrailingData {
		f.Set(result.FeatureTag, TagTrailingData)
	}
	return f
}
