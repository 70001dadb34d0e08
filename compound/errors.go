package compound

import "fmt"

// ContainerFormatError is returned by Open when the file is not a compound
// binary file or is too damaged to read.
type ContainerFormatError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (e *ContainerFormatError) Error() string {
	return fmt.Sprintf("%s: not a readable compound file: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ContainerFormatError) Unwrap() error {
	return e.Err
}
