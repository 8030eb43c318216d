package service

import (
	"strings"
	"text/template"

	"github.com/sangkips/label-bridge/internal/config"
	"github.com/sangkips/label-bridge/internal/domain/entity"
)

// Fixed label layout in device units. Positions do not depend on text
// length; long text is clipped by the printer, not wrapped.
const (
	labelFontFamily = "Arial"

	titleFontSize   = 72
	titleFontWeight = 700
	bodyFontSize    = 52
	bodyFontWeight  = 400

	titleX, titleY = 120, 720
	priceX, priceY = 240, 720
	skuX, skuY     = 330, 720
)

// labelTemplate is a DYMO DieCutLabel for the 30321 Address label. Values
// are inserted as-is, without XML escaping.
var labelTemplate = template.Must(template.New("label").Parse(`<?xml version="1.0" encoding="utf-8"?>
<DieCutLabel Version="8.0" Units="twips" xmlns="http://www.dymo.com/zeus/Community/DieCutLabel.xsd">
  <PaperOrientation>Landscape</PaperOrientation>
  <Id>Address</Id>
  <PaperName>30321 Address</PaperName>
  <DrawCommands />
  <ObjectInfo>
    <TextObject>
      <Name>TEXT</Name>
      <ForeColor Alpha="255" Red="0" Green="0" Blue="0" />
      <BackColor Alpha="0" Red="255" Green="255" Blue="255" />
      <Rotation>Rotation0</Rotation>
      <IsVariable>True</IsVariable>
      <HorizontalAlignment>Left</HorizontalAlignment>
      <VerticalAlignment>Top</VerticalAlignment>
      <TextFitMode>ShrinkToFit</TextFitMode>
      <StyledText>
        <Element>
          <String>{{.Title}}</String>
          <Attributes>
            <Font Family="Arial" Size="14" Bold="True" Italic="False" Underline="False" Strikeout="False" />
            <ForeColor Alpha="255" Red="0" Green="0" Blue="0" />
          </Attributes>
        </Element>
        <Element>
          <String>{{.PriceLine}}</String>
          <Attributes>
            <Font Family="Arial" Size="11" Bold="False" Italic="False" Underline="False" Strikeout="False" />
            <ForeColor Alpha="255" Red="0" Green="0" Blue="0" />
          </Attributes>
        </Element>
        <Element>
          <String>{{.SKULine}}</String>
          <Attributes>
            <Font Family="Arial" Size="10" Bold="False" Italic="False" Underline="False" Strikeout="False" />
            <ForeColor Alpha="255" Red="0" Green="0" Blue="0" />
          </Attributes>
        </Element>
      </StyledText>
    </TextObject>
    <Bounds X="190" Y="120" Width="2250" Height="1000" />
  </ObjectInfo>
</DieCutLabel>
`))

// LabelRenderer turns a LabelRequest into printer-ready content.
type LabelRenderer struct {
	titleFont entity.FontSpec
	bodyFont  entity.FontSpec
}

// NewLabelRenderer creates a renderer using the configured text rotation.
func NewLabelRenderer(cfg config.PrinterConfig) *LabelRenderer {
	return &LabelRenderer{
		titleFont: entity.FontSpec{
			Family:   labelFontFamily,
			Size:     titleFontSize,
			Weight:   titleFontWeight,
			Rotation: cfg.Rotation,
		},
		bodyFont: entity.FontSpec{
			Family:   labelFontFamily,
			Size:     bodyFontSize,
			Weight:   bodyFontWeight,
			Rotation: cfg.Rotation,
		},
	}
}

// PriceLine is the price as printed on the label.
func PriceLine(price string) string {
	return "Prijs: " + price
}

// SKULine is the SKU as printed on the label.
func SKULine(sku string) string {
	return "SKU: " + sku
}

// RenderForDirectDraw returns the title, price and SKU draws.
func (r *LabelRenderer) RenderForDirectDraw(req entity.LabelRequest) entity.DrawCommandSet {
	return entity.DrawCommandSet{
		Commands: []entity.DrawCommand{
			{Text: req.ProductName, X: titleX, Y: titleY, Font: r.titleFont},
			{Text: PriceLine(req.Price), X: priceX, Y: priceY, Font: r.bodyFont},
			{Text: SKULine(req.SKU), X: skuX, Y: skuY, Font: r.bodyFont},
		},
	}
}

// RenderForMarkupTransport returns the label as a DieCutLabel document with
// the three lines as styled runs separated by newlines.
func (r *LabelRenderer) RenderForMarkupTransport(req entity.LabelRequest) entity.MarkupDocument {
	var b strings.Builder
	// Execute cannot fail: the data has every field the template uses and
	// strings.Builder never returns a write error.
	_ = labelTemplate.Execute(&b, struct {
		Title     string
		PriceLine string
		SKULine   string
	}{
		Title:     req.ProductName,
		PriceLine: "\n" + PriceLine(req.Price),
		SKULine:   "\n" + SKULine(req.SKU),
	})
	return entity.MarkupDocument{Content: b.String()}
}
