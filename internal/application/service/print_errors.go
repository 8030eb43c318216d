package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sangkips/label-bridge/internal/domain/entity"
	"github.com/sangkips/label-bridge/internal/domain/enum"
	"github.com/sangkips/label-bridge/pkg/printer"
)

const (
	msgAccessDenied = "Toegang geweigerd (Access is denied)"
	msgPrinterBusy  = "USB-poort/printer is bezet"
)

// NotFoundMessage is the caller-facing message for an unknown printer name.
func NotFoundMessage(name string) string {
	return fmt.Sprintf("Printer '%s' niet gevonden", name)
}

// classify maps a failed attempt to a PrintResult. Busy codes are only
// recognised on the raw transport; on GDI they are unknown errors.
func (s *PrintService) classify(t enum.Transport, connected bool, err error, log *zap.Logger) entity.PrintResult {
	code, hasCode := printer.Code(err)
	var codePtr *int
	if hasCode {
		codePtr = &code
	}

	switch {
	case hasCode && code == printer.CodeInvalidPrinterName:
		log.Error("Printer not found", zap.Int("code", code))
		s.logCandidatePrinters(log)
		return entity.PrintFailed(t, enum.PrintErrorNotFound, codePtr, NotFoundMessage(s.cfg.Name))

	case hasCode && code == printer.CodeAccessDenied:
		log.Error("Access denied; close other print jobs and check permissions", zap.Int("code", code))
		return entity.PrintFailed(t, enum.PrintErrorAccessDenied, codePtr, msgAccessDenied)

	case t == enum.TransportRAW && hasCode &&
		(code == printer.CodeSharingViolation || code == printer.CodeBusy):
		log.Error("Printer port is busy; retry after running jobs finish", zap.Int("code", code))
		return entity.PrintFailed(t, enum.PrintErrorBusy, codePtr, msgPrinterBusy)

	case !connected:
		log.Error("Could not connect to printer", zap.Error(err))
		return entity.PrintFailed(t, enum.PrintErrorConnect, codePtr, err.Error())

	default:
		log.Error("Print failed", zap.Error(err))
		return entity.PrintFailed(t, enum.PrintErrorUnknown, codePtr, err.Error())
	}
}

// logCandidatePrinters writes the installed printers to the operator log.
// The list never reaches the HTTP response.
func (s *PrintService) logCandidatePrinters(log *zap.Logger) {
	printers, err := s.driver.EnumPrinters()
	if err != nil {
		log.Warn("Could not list printers", zap.Error(err))
		return
	}
	if len(printers) == 0 {
		return
	}
	log.Info("Found printers", zap.Strings("printers", printers))
}
