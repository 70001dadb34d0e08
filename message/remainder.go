package message

import "io"

// remainder joins the bytes already read from an io.Reader while looking for
// the end of the header with the unread rest of that io.Reader.
type remainder struct {
	prefix []byte
	r      io.Reader
}

// Read returns the buffered bytes first and then reads from the io.Reader.
func (r *remainder) Read(p []byte) (n int, err error) {
	if len(r.prefix) > 0 {
		n = copy(p, r.prefix)
		r.prefix = r.prefix[n:]
		if n == len(p) {
			return n, nil
		}
	}

	var rn int
	rn, err = r.r.Read(p[n:])
	n += rn
	if n > 0 && err == io.EOF {
		err = nil
	}

	return n, err
}

// Close passes the call through to the io.Reader if it is an io.Closer.
// Otherwise, it does nothing.
func (r *remainder) Close() error {
	if c, isCloser := r.r.(io.Closer); isCloser {
		return c.Close()
	}
	return nil
}
