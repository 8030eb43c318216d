package request

import (
	"bytes"
	"encoding/json"

	"github.com/sangkips/label-bridge/internal/domain/entity"
)

// Text accepts a JSON string, number or boolean and keeps its text form, so
// {"price": 12.99} reads as "12.99". null reads as empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	*t = Text(data)
	return nil
}

// PrintLabelRequest is the request body for printing a label.
type PrintLabelRequest struct {
	ProductName Text `json:"productName"`
	Price       Text `json:"price"`
	SKU         Text `json:"sku"`
}

// ToLabelRequest trims and validates the fields.
func (r PrintLabelRequest) ToLabelRequest() (entity.LabelRequest, error) {
	return entity.NewLabelRequest(string(r.ProductName), string(r.Price), string(r.SKU))
}
