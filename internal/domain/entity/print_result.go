package entity

import "github.com/sangkips/label-bridge/internal/domain/enum"

// PrintResult is the outcome of one print attempt. It is created once and
// never modified.
type PrintResult struct {
	Success   bool                `json:"success"`
	Transport enum.Transport      `json:"transport"`
	Kind      enum.PrintErrorKind `json:"kind"`
	ErrorCode *int                `json:"errorCode"`
	Message   string              `json:"message"`
}

// PrintSucceeded builds a successful result.
func PrintSucceeded(transport enum.Transport, message string) PrintResult {
	return PrintResult{
		Success:   true,
		Transport: transport,
		Kind:      enum.PrintErrorNone,
		Message:   message,
	}
}

// PrintFailed builds a failed result. code may be nil when the failure did
// not come from the OS.
func PrintFailed(transport enum.Transport, kind enum.PrintErrorKind, code *int, message string) PrintResult {
	return PrintResult{
		Transport: transport,
		Kind:      kind,
		ErrorCode: code,
		Message:   message,
	}
}
