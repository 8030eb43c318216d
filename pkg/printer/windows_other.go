//go:build !windows

package printer

import (
	"fmt"
	"runtime"
)

// NewWindowsDriver is only available on Windows.
func NewWindowsDriver() (Driver, error) {
	return nil, fmt.Errorf("printer: windows driver is not available on %s", runtime.GOOS)
}
