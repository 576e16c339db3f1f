package report

import (
	"errors"
	"fmt"
)

// ErrContentTooLarge is returned by clipboard export when the
// serialized report exceeds the configured byte cap. The payload is
// never truncated.
var ErrContentTooLarge = errors.New("report exceeds clipboard size limit")

// ClipboardError wraps clipboard backend failures (headless session,
// missing permissions, no usable backend). It is deliberately
// distinct from file IO errors so the host can message the user
// accordingly.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard write failed: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }
