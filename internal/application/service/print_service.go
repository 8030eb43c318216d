package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sangkips/label-bridge/internal/config"
	"github.com/sangkips/label-bridge/internal/domain/entity"
	"github.com/sangkips/label-bridge/internal/domain/enum"
	"github.com/sangkips/label-bridge/pkg/printer"
)

// rawDataTypes are tried in order when starting a raw job. The empty type
// lets the spooler choose its default.
var rawDataTypes = []string{"RAW", ""}

// PrintService sends labels to the configured printer and classifies
// failures into a PrintResult.
type PrintService struct {
	driver   printer.Driver
	renderer *LabelRenderer
	cfg      config.PrinterConfig
	logger   *zap.Logger
}

// NewPrintService creates a new print service.
func NewPrintService(
	driver printer.Driver,
	renderer *LabelRenderer,
	cfg config.PrinterConfig,
	logger *zap.Logger,
) *PrintService {
	return &PrintService{
		driver:   driver,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger.Named("print"),
	}
}

// PrinterStatus tells whether the configured printer is known to the OS.
type PrinterStatus struct {
	Name      string   `json:"name"`
	Driver    string   `json:"driver"`
	Installed bool     `json:"installed"`
	Printers  []string `json:"printers"`
}

// GetStatus enumerates printers and reports whether the target is among them.
func (s *PrintService) GetStatus() (*PrinterStatus, error) {
	printers, err := s.driver.EnumPrinters()
	if err != nil {
		return nil, fmt.Errorf("failed to list printers: %w", err)
	}
	status := &PrinterStatus{
		Name:     s.cfg.Name,
		Driver:   s.cfg.Driver,
		Printers: printers,
	}
	for _, p := range printers {
		if p == s.cfg.Name {
			status.Installed = true
			break
		}
	}
	return status, nil
}

// PrintDirect draws the label on a device context for the printer.
func (s *PrintService) PrintDirect(req entity.LabelRequest) entity.PrintResult {
	log := s.attemptLogger(enum.TransportGDI)
	log.Info("Trying GDI driver print")

	connected, err := s.drawLabel(s.renderer.RenderForDirectDraw(req), log)
	if err != nil {
		return s.classify(enum.TransportGDI, connected, err, log)
	}

	log.Info("GDI print job sent")
	return entity.PrintSucceeded(enum.TransportGDI, "GDI-printtaak verzonden")
}

// PrintRaw submits the label document as a raw spooler job.
func (s *PrintService) PrintRaw(req entity.LabelRequest) entity.PrintResult {
	log := s.attemptLogger(enum.TransportRAW)
	log.Info("Trying RAW print")

	connected, err := s.submitRaw(s.renderer.RenderForMarkupTransport(req).Bytes(), log)
	if err != nil {
		return s.classify(enum.TransportRAW, connected, err, log)
	}
	return entity.PrintSucceeded(enum.TransportRAW, "RAW-printtaak verzonden")
}

// FallbackOutcome lists every attempt made by PrintWithFallback in order.
type FallbackOutcome struct {
	Attempts []entity.PrintResult
}

// Final is the result of the last attempt.
func (o FallbackOutcome) Final() entity.PrintResult {
	return o.Attempts[len(o.Attempts)-1]
}

// PrintWithFallback prints with the preferred transport. When GDI is
// preferred and fails, the raw transport is tried once as a separate
// attempt.
func (s *PrintService) PrintWithFallback(req entity.LabelRequest, preferred enum.Transport) FallbackOutcome {
	if preferred == enum.TransportRAW {
		return FallbackOutcome{Attempts: []entity.PrintResult{s.PrintRaw(req)}}
	}

	first := s.PrintDirect(req)
	if first.Success {
		return FallbackOutcome{Attempts: []entity.PrintResult{first}}
	}

	s.logger.Info("GDI failed, trying RAW fallback", zap.Stringer("kind", first.Kind))
	return FallbackOutcome{Attempts: []entity.PrintResult{first, s.PrintRaw(req)}}
}

func (s *PrintService) attemptLogger(t enum.Transport) *zap.Logger {
	return s.logger.With(
		zap.String("printer", s.cfg.Name),
		zap.Stringer("transport", t),
	)
}

// drawLabel runs the device-context job. connected reports whether the
// context was opened; it is released on every path once it was.
func (s *PrintService) drawLabel(label entity.DrawCommandSet, log *zap.Logger) (connected bool, err error) {
	canvas, err := s.driver.OpenDC(s.cfg.Name)
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := canvas.Close(); cerr != nil {
			log.Warn("Failed to release device context", zap.Error(cerr))
		}
	}()

	if err := canvas.StartDoc(s.cfg.JobName + " (GDI)"); err != nil {
		return true, err
	}
	if err := canvas.StartPage(); err != nil {
		return true, err
	}

	var selected *entity.FontSpec
	for i := range label.Commands {
		cmd := &label.Commands[i]
		if selected == nil || *selected != cmd.Font {
			if err := canvas.SelectFont(toDriverFont(cmd.Font)); err != nil {
				return true, err
			}
			selected = &cmd.Font
		}
		if err := canvas.TextOut(cmd.X, cmd.Y, cmd.Text); err != nil {
			return true, err
		}
	}

	if err := canvas.EndPage(); err != nil {
		return true, err
	}
	return true, canvas.EndDoc()
}

// submitRaw runs the spooler job. The handle is closed on every path once
// it was opened.
func (s *PrintService) submitRaw(payload []byte, log *zap.Logger) (connected bool, err error) {
	spool, err := s.driver.OpenPrinter(s.cfg.Name)
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := spool.Close(); cerr != nil {
			log.Warn("Failed to close printer handle", zap.Error(cerr))
		}
	}()

	var jobID int
	var dataType string
	for _, dataType = range rawDataTypes {
		jobID, err = spool.StartDoc(s.cfg.JobName, dataType)
		if err == nil {
			break
		}
		log.Warn("Could not start print job", zap.String("datatype", dataTypeName(dataType)), zap.Error(err))
	}
	if err != nil {
		return true, err
	}

	written, err := writeRawJob(spool, payload)
	if err != nil {
		return true, err
	}

	log.Info("RAW print job sent",
		zap.String("datatype", dataTypeName(dataType)),
		zap.Int("bytes", written),
		zap.Int("job", jobID),
	)
	return true, nil
}

// writeRawJob writes one page and always ends the document it was given.
func writeRawJob(spool printer.Spool, payload []byte) (n int, err error) {
	defer func() {
		if endErr := spool.EndDoc(); endErr != nil && err == nil {
			err = endErr
		}
	}()

	if err = spool.StartPage(); err != nil {
		return 0, err
	}
	n, err = spool.Write(payload)
	if err != nil {
		return n, err
	}
	if n != len(payload) {
		return n, fmt.Errorf("printer: short write (%d of %d bytes)", n, len(payload))
	}
	return n, spool.EndPage()
}

func toDriverFont(f entity.FontSpec) printer.Font {
	return printer.Font{
		Family:     f.Family,
		Height:     f.Size,
		Weight:     f.Weight,
		Escapement: f.Escapement(),
	}
}

func dataTypeName(dataType string) string {
	if dataType == "" {
		return "default"
	}
	return dataType
}
