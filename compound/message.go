package compound

import (
	"errors"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/richardlehane/mscfb"
)

const (
	substgPrefix = "__substg1.0_"
	attachPrefix = "__attach"
	propsStream  = "__properties_version1.0"
	rootEntry    = "Root Entry"
)

type stream struct {
	path string
	data []byte
}

// Message is an Outlook message loaded from a compound file. The accessors
// compute their values from the streams on first use and remember them, so
// a Message must not be shared between goroutines without locking.
type Message struct {
	streams map[string]stream
	memo    map[string]any
}

// Open reads the compound file at path and loads all of its streams. A file
// that is not a compound file, or whose directory cannot be walked, results
// in a *ContainerFormatError.
func Open(path string) (*Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ContainerFormatError{Path: path, Err: err}
	}
	defer f.Close()

	r, err := mscfb.New(f)
	if err != nil {
		return nil, &ContainerFormatError{Path: path, Err: err}
	}

	streams := map[string][]byte{}
	for {
		entry, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, &ContainerFormatError{Path: path, Err: err}
		}

		if entry.FileInfo().IsDir() {
			continue
		}

		data, err := io.ReadAll(entry)
		if err != nil {
			return nil, &ContainerFormatError{Path: path, Err: err}
		}

		elems := entry.Path
		if len(elems) > 0 && elems[0] == rootEntry {
			elems = elems[1:]
		}
		streams[strings.Join(append(append([]string{}, elems...), entry.Name), "/")] = data
	}

	return NewMessage(streams), nil
}

// NewMessage builds a Message from streams that were already extracted from
// a compound file. Keys are stream paths relative to the root storage with
// "/" between storage names, e.g. "__attach_version1.0_#00000000/__substg1.0_3707001F".
func NewMessage(streams map[string][]byte) *Message {
	m := &Message{
		streams: make(map[string]stream, len(streams)),
		memo:    map[string]any{},
	}
	for p, data := range streams {
		m.streams[strings.ToLower(p)] = stream{path: p, data: data}
	}
	return m
}

// ReadStream returns the raw bytes of the stream at path. Stream names are
// matched without regard to case.
func (m *Message) ReadStream(path string) ([]byte, bool) {
	s, ok := m.streams[strings.ToLower(path)]
	if !ok {
		return nil, false
	}
	return s.data, true
}

// Paths returns the path of every stream in the file, sorted.
func (m *Message) Paths() []string {
	paths := make([]string, 0, len(m.streams))
	for _, s := range m.streams {
		paths = append(paths, s.path)
	}
	sort.Strings(paths)
	return paths
}

// Streams returns the paths of the streams holding string properties.
func (m *Message) Streams() []string {
	var paths []string
	for _, p := range m.Paths() {
		tp := strings.ToUpper(p)
		if strings.HasSuffix(tp, utf16Suffix) || strings.HasSuffix(tp, latin1Suffix) {
			paths = append(paths, p)
		}
	}
	return paths
}

// cached returns the memoized value of the named property, computing it with
// fn the first time.
func (m *Message) cached(name string, fn func() any) any {
	if v, ok := m.memo[name]; ok {
		return v
	}
	v := fn()
	m.memo[name] = v
	return v
}
