package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Transport is the path a label takes to the printer
type Transport int

const (
	// TransportGDI draws text on a printer device context.
	TransportGDI Transport = 0
	// TransportRAW submits a label document as an opaque spooler job.
	TransportRAW Transport = 1
)

func (t Transport) String() string {
	return [...]string{"GDI", "RAW"}[t]
}

// ParseTransport accepts "GDI" or "RAW" in any case.
func ParseTransport(s string) (Transport, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GDI":
		return TransportGDI, nil
	case "RAW":
		return TransportRAW, nil
	}
	return TransportGDI, fmt.Errorf("unknown transport %q (use GDI or RAW)", s)
}

func (t Transport) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Transport) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseTransport(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
