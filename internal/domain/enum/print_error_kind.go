package enum

import "encoding/json"

// PrintErrorKind classifies why a print attempt failed
type PrintErrorKind int

const (
	PrintErrorNone         PrintErrorKind = 0
	PrintErrorConnect      PrintErrorKind = 1
	PrintErrorNotFound     PrintErrorKind = 2
	PrintErrorAccessDenied PrintErrorKind = 3
	PrintErrorBusy         PrintErrorKind = 4
	PrintErrorUnknown      PrintErrorKind = 5
)

func (k PrintErrorKind) String() string {
	return [...]string{
		"none",
		"connect_error",
		"printer_not_found",
		"access_denied",
		"printer_busy",
		"unknown_print_error",
	}[k]
}

func (k PrintErrorKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}
