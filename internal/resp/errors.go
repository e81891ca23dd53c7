package resp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotComplete signals that the buffer holds only a prefix of a frame; the
// caller must read more bytes and retry. It is a sentinel, not a fatal error.
var ErrNotComplete = errors.New("resp: frame not complete")

// DecodeError is a fatal, typed decode failure. The connection pipeline
// treats any DecodeError as unrecoverable: RESP streams cannot resynchronize
// mid-frame, so the connection is closed after reporting it.
type DecodeError struct {
	Kind    string
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("resp: %s: %s", e.Kind, e.Message)
}

func newInvalidFrameType(format string, args ...any) error {
	return &DecodeError{Kind: "invalid frame type", Message: fmt.Sprintf(format, args...)}
}

func newInvalidFrame(format string, args ...any) error {
	return &DecodeError{Kind: "invalid frame", Message: fmt.Sprintf(format, args...)}
}

func newInvalidFrameLength(length int64) error {
	return &DecodeError{Kind: "invalid frame length", Message: fmt.Sprintf("%d", length)}
}

func wrapParseError(kind string, err error) error {
	return errors.Wrapf(err, "resp: %s parse error", kind)
}
