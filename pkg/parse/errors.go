package parse

import "fmt"

// ReadError reports a failure to read a source file. It wraps the
// operating-system cause, so errors.Is(err, fs.ErrNotExist) and friends hold
// through the chain.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// EncodingError reports file content that could not be decoded as UTF-8
// text. Offset is the byte position of the first invalid sequence in the
// decoded content.
type EncodingError struct {
	Path   string
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: invalid UTF-8 at byte %d", e.Path, e.Offset)
}
