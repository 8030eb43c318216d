package printer

import (
	"errors"
	"fmt"
	"syscall"
)

// Spooler error codes the bridge classifies. The values are the Win32 codes
// returned by winspool and gdi32; other drivers reuse them so callers see a
// single vocabulary.
const (
	CodeAccessDenied       = 5    // ERROR_ACCESS_DENIED
	CodeSharingViolation   = 32   // ERROR_SHARING_VIOLATION
	CodeBusy               = 170  // ERROR_BUSY
	CodeInvalidPrinterName = 1801 // ERROR_INVALID_PRINTER_NAME
)

// ErrDirectDrawUnsupported is returned by drivers that can only move raw bytes.
var ErrDirectDrawUnsupported = errors.New("printer: direct draw is not supported by this driver")

// OSError is a failure reported by the operating system print subsystem.
type OSError struct {
	Op   string
	Code int
	Err  error
}

func (e *OSError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("printer: %s: %v (code=%d)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("printer: %s failed (code=%d)", e.Op, e.Code)
}

func (e *OSError) Unwrap() error {
	return e.Err
}

// NewOSError wraps an OS error code for the given operation.
func NewOSError(op string, code int) *OSError {
	return &OSError{Op: op, Code: code, Err: syscall.Errno(code)}
}

// Code extracts the OS error code carried by err, if any.
func Code(err error) (int, bool) {
	var osErr *OSError
	if errors.As(err, &osErr) {
		return osErr.Code, true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno), true
	}
	return 0, false
}
