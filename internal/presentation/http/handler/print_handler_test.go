package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sangkips/label-bridge/internal/application/service"
	"github.com/sangkips/label-bridge/internal/config"
	"github.com/sangkips/label-bridge/internal/domain/enum"
	"github.com/sangkips/label-bridge/pkg/printer/printertest"
)

const testPrinter = "DYMO LabelWriter 450"

func setupRouter(driver *printertest.FakeDriver) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := config.PrinterConfig{
		Name:     testPrinter,
		Driver:   "none",
		Rotation: enum.Rotation90,
		Method:   enum.TransportGDI,
		JobName:  "DYMO Website Print",
	}
	svc := service.NewPrintService(driver, service.NewLabelRenderer(cfg), cfg, zap.NewNop())
	h := NewPrintHandler(svc)

	router := gin.New()
	router.GET("/health", h.Health)
	router.POST("/print", h.Print)
	return router
}

func doPrint(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/print", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPrint_Success(t *testing.T) {
	driver := printertest.NewFakeDriver(testPrinter)
	router := setupRouter(driver)

	w := doPrint(router, `{"productName":"USB-C Cable","price":"€12,99","sku":"ABC-123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Len(t, driver.Texts, 3)
	assert.Equal(t, "USB-C Cable", driver.Texts[0].Text)
	assert.Equal(t, "Prijs: €12,99", driver.Texts[1].Text)
	assert.Equal(t, "SKU: ABC-123", driver.Texts[2].Text)
}

func TestPrint_PrinterNotFound(t *testing.T) {
	driver := printertest.NewFakeDriver(testPrinter).FailCode(printertest.OpOpenDC, 1801)
	router := setupRouter(driver)

	w := doPrint(router, `{"productName":"USB-C Cable","price":"€12,99","sku":"ABC-123"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t,
		`{"success":false,"error":"Printer 'DYMO LabelWriter 450' niet gevonden","errorCode":1801}`,
		w.Body.String())
}

func TestPrint_AccessDenied(t *testing.T) {
	driver := printertest.NewFakeDriver(testPrinter).FailCode(printertest.OpStartDoc, 5)
	router := setupRouter(driver)

	w := doPrint(router, `{"productName":"A","price":"1","sku":"X"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t,
		`{"success":false,"error":"Toegang geweigerd (Access is denied)","errorCode":5}`,
		w.Body.String())
	assert.True(t, driver.Balanced())
}

func TestPrint_UnknownErrorWithoutCode(t *testing.T) {
	driver := printertest.NewFakeDriver(testPrinter)
	driver.Fail(printertest.OpTextOut, assert.AnError)
	router := setupRouter(driver)

	w := doPrint(router, `{"productName":"A","price":"1","sku":"X"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t,
		`{"success":false,"error":"`+assert.AnError.Error()+`","errorCode":null}`,
		w.Body.String())
}

func TestPrint_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty sku", `{"productName":"USB-C Cable","price":"€12,99","sku":""}`, "sku ontbreekt"},
		{"missing sku", `{"productName":"USB-C Cable","price":"€12,99"}`, "sku ontbreekt"},
		{"whitespace price", `{"productName":"A","price":"   ","sku":"X"}`, "price ontbreekt"},
		{"null product", `{"productName":null,"price":"1","sku":"X"}`, "productName ontbreekt"},
		{"all missing reports product first", `{}`, "productName ontbreekt"},
		{"price and sku missing", `{"productName":"A"}`, "price ontbreekt"},
		{"empty body", ``, "productName ontbreekt"},
		{"invalid json", `{"productName":`, "productName ontbreekt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := printertest.NewFakeDriver(testPrinter)
			router := setupRouter(driver)

			w := doPrint(router, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t,
				`{"success":false,"error":"`+tt.wantErr+`","errorCode":null}`,
				w.Body.String())
			assert.Empty(t, driver.Calls, "printer must not be touched")
		})
	}
}

func TestPrint_CoercesNumbers(t *testing.T) {
	driver := printertest.NewFakeDriver(testPrinter)
	router := setupRouter(driver)

	w := doPrint(router, `{"productName":"Kabel","price":12.99,"sku":1001}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, driver.Texts, 3)
	assert.Equal(t, "Prijs: 12.99", driver.Texts[1].Text)
	assert.Equal(t, "SKU: 1001", driver.Texts[2].Text)
}

func TestPrint_TrimsFields(t *testing.T) {
	driver := printertest.NewFakeDriver(testPrinter)
	router := setupRouter(driver)

	w := doPrint(router, `{"productName":"  Kabel  ","price":" 1 ","sku":"\tX\n"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, driver.Texts, 3)
	assert.Equal(t, "Kabel", driver.Texts[0].Text)
	assert.Equal(t, "SKU: X", driver.Texts[2].Text)
}

func TestHealth(t *testing.T) {
	driver := printertest.NewFakeDriver()
	router := setupRouter(driver)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Empty(t, driver.Calls)
}
