package mimewalk

// DefaultScanDepth is how far into the input Walk looks for the first header
// line.
const DefaultScanDepth = 5000

// DefaultMaxDepth bounds how deeply attached messages are followed.
const DefaultMaxDepth = 8

// DefaultContentTypeFilter lists the content types that are never emitted as
// child artifacts. They are still hashed and counted.
var DefaultContentTypeFilter = []string{
	"text/plain",
	"text/html",
	"text/xml",
	"text/css",
	"text/javascript",
	"application/javascript",
	"application/x-javascript",
	"message/delivery-status",
}

// Config holds the settings of Walk.
type Config struct {
	// ContentTypeFilter lists content types that are not emitted as children.
	ContentTypeFilter []string `yaml:"content_type_filter"`

	// ReportMailBodies enables capture of the plain text and HTML bodies.
	ReportMailBodies bool `yaml:"report_mail_bodies"`

	// AppendedDataAsChild emits data found after the final boundary as a
	// child artifact.
	AppendedDataAsChild bool `yaml:"appended_data_as_child"`

	// MaxDepth bounds both multipart nesting and the number of attached
	// messages followed inside one another. Zero means DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		ContentTypeFilter: append([]string{}, DefaultContentTypeFilter...),
		ReportMailBodies:  true,
	}
}

func (c *Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c *Config) filtered(contentType string) bool {
	for _, ct := range c.ContentTypeFilter {
		if ct == contentType {
			return true
		}
	}
	return false
}
