package entity

import (
	"strings"

	"github.com/sangkips/label-bridge/internal/domain/enum"
)

// MissingFieldError reports a label field that is empty after trimming.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " ontbreekt"
}

// LabelRequest is the text printed on one label. Build it with
// NewLabelRequest so the fields are trimmed and non-empty.
type LabelRequest struct {
	ProductName string `json:"productName"`
	Price       string `json:"price"`
	SKU         string `json:"sku"`
}

// NewLabelRequest trims the fields and rejects the first empty one, checked
// in the order productName, price, sku.
func NewLabelRequest(productName, price, sku string) (LabelRequest, error) {
	req := LabelRequest{
		ProductName: strings.TrimSpace(productName),
		Price:       strings.TrimSpace(price),
		SKU:         strings.TrimSpace(sku),
	}
	switch {
	case req.ProductName == "":
		return LabelRequest{}, &MissingFieldError{Field: "productName"}
	case req.Price == "":
		return LabelRequest{}, &MissingFieldError{Field: "price"}
	case req.SKU == "":
		return LabelRequest{}, &MissingFieldError{Field: "sku"}
	}
	return req, nil
}

// FontSpec is a logical font used on the label.
type FontSpec struct {
	Family   string        `json:"family"`
	Size     int           `json:"size"`
	Weight   int           `json:"weight"`
	Rotation enum.Rotation `json:"rotation"`
}

// Escapement is the text angle in tenths of a degree.
func (f FontSpec) Escapement() int {
	return f.Rotation.Escapement()
}

// DrawCommand places one line of text on the device context.
type DrawCommand struct {
	Text string   `json:"text"`
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Font FontSpec `json:"font"`
}

// DrawCommandSet is a label rendered for the direct-draw transport.
type DrawCommandSet struct {
	Commands []DrawCommand `json:"commands"`
}

func (DrawCommandSet) Transport() enum.Transport { return enum.TransportGDI }

// MarkupDocument is a label rendered as a label-description document for
// the raw transport.
type MarkupDocument struct {
	Content string `json:"content"`
}

func (MarkupDocument) Transport() enum.Transport { return enum.TransportRAW }

// Bytes returns the UTF-8 job body.
func (d MarkupDocument) Bytes() []byte {
	return []byte(d.Content)
}

// RenderedLabel is either a DrawCommandSet or a MarkupDocument.
type RenderedLabel interface {
	Transport() enum.Transport
}
