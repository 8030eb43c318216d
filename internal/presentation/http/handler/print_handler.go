package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/label-bridge/internal/application/service"
	"github.com/sangkips/label-bridge/internal/infrastructure/logger"
	"github.com/sangkips/label-bridge/internal/presentation/http/dto/request"
	"github.com/sangkips/label-bridge/internal/presentation/http/dto/response"
	"github.com/sangkips/label-bridge/pkg/apperror"
)

// PrintHandler handles label print requests.
type PrintHandler struct {
	printService *service.PrintService
}

// NewPrintHandler creates a new print handler.
func NewPrintHandler(printService *service.PrintService) *PrintHandler {
	return &PrintHandler{printService: printService}
}

// Health reports that the bridge is up. It does not touch the printer.
func (h *PrintHandler) Health(c *gin.Context) {
	response.Healthy(c)
}

// Print validates the label fields and prints them over the direct-draw
// transport. A missing field is rejected before the printer is touched.
func (h *PrintHandler) Print(c *gin.Context) {
	var req request.PrintLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An unreadable body counts as an empty one.
		req = request.PrintLabelRequest{}
	}

	label, err := req.ToLabelRequest()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result := h.printService.PrintDirect(label)
	if !result.Success {
		logger.FromContext(c).Warn("Label not printed",
			zap.Stringer("kind", result.Kind),
			zap.String("sku", label.SKU),
		)
		_ = c.Error(errors.New(result.Message))
		response.Error(c, apperror.NewPrintError(result.Message, result.ErrorCode))
		return
	}

	response.Printed(c)
}
