//go:build windows

package printer

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modWinspool = windows.NewLazySystemDLL("winspool.drv")
	modGDI32    = windows.NewLazySystemDLL("gdi32.dll")

	procOpenPrinterW     = modWinspool.NewProc("OpenPrinterW")
	procClosePrinter     = modWinspool.NewProc("ClosePrinter")
	procStartDocPrinterW = modWinspool.NewProc("StartDocPrinterW")
	procEndDocPrinter    = modWinspool.NewProc("EndDocPrinter")
	procStartPagePrinter = modWinspool.NewProc("StartPagePrinter")
	procEndPagePrinter   = modWinspool.NewProc("EndPagePrinter")
	procWritePrinter     = modWinspool.NewProc("WritePrinter")
	procEnumPrintersW    = modWinspool.NewProc("EnumPrintersW")

	procCreateDCW    = modGDI32.NewProc("CreateDCW")
	procDeleteDC     = modGDI32.NewProc("DeleteDC")
	procStartDocW    = modGDI32.NewProc("StartDocW")
	procEndDoc       = modGDI32.NewProc("EndDoc")
	procStartPage    = modGDI32.NewProc("StartPage")
	procEndPage      = modGDI32.NewProc("EndPage")
	procCreateFontW  = modGDI32.NewProc("CreateFontW")
	procSelectObject = modGDI32.NewProc("SelectObject")
	procDeleteObject = modGDI32.NewProc("DeleteObject")
	procTextOutW     = modGDI32.NewProc("TextOutW")
)

const (
	printerEnumLocal       = 0x00000002
	printerEnumConnections = 0x00000004

	defaultCharset = 1
	hgdiError      = ^uintptr(0)
)

// DOC_INFO_1W
type docInfo1 struct {
	DocName    *uint16
	OutputFile *uint16
	Datatype   *uint16
}

// DOCINFOW
type gdiDocInfo struct {
	Size     int32
	DocName  *uint16
	Output   *uint16
	Datatype *uint16
	Type     uint32
}

// PRINTER_INFO_4W
type printerInfo4 struct {
	PrinterName *uint16
	ServerName  *uint16
	Attributes  uint32
}

type windowsDriver struct{}

// NewWindowsDriver creates a driver backed by winspool.drv and gdi32.dll.
func NewWindowsDriver() (Driver, error) {
	if err := modWinspool.Load(); err != nil {
		return nil, fmt.Errorf("printer: failed to load winspool.drv: %w", err)
	}
	if err := modGDI32.Load(); err != nil {
		return nil, fmt.Errorf("printer: failed to load gdi32.dll: %w", err)
	}
	return &windowsDriver{}, nil
}

func (d *windowsDriver) OpenDC(name string) (Canvas, error) {
	driver, err := windows.UTF16PtrFromString("WINSPOOL")
	if err != nil {
		return nil, err
	}
	device, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}
	hdc, _, callErr := procCreateDCW.Call(
		uintptr(unsafe.Pointer(driver)),
		uintptr(unsafe.Pointer(device)),
		0,
		0,
	)
	if hdc == 0 {
		return nil, lastError("CreateDC", callErr)
	}
	return &gdiCanvas{hdc: hdc}, nil
}

func (d *windowsDriver) OpenPrinter(name string) (Spool, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}
	var handle uintptr
	r, _, callErr := procOpenPrinterW.Call(
		uintptr(unsafe.Pointer(namePtr)),
		uintptr(unsafe.Pointer(&handle)),
		0,
	)
	if r == 0 {
		return nil, lastError("OpenPrinter", callErr)
	}
	return &winSpool{handle: handle}, nil
}

func (d *windowsDriver) EnumPrinters() ([]string, error) {
	flags := uintptr(printerEnumLocal | printerEnumConnections)
	var needed, returned uint32

	// First call sizes the buffer and is expected to fail.
	procEnumPrintersW.Call(flags, 0, 4, 0, 0,
		uintptr(unsafe.Pointer(&needed)),
		uintptr(unsafe.Pointer(&returned)),
	)
	if needed == 0 {
		return nil, nil
	}

	buf := make([]byte, needed)
	r, _, callErr := procEnumPrintersW.Call(flags, 0, 4,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(needed),
		uintptr(unsafe.Pointer(&needed)),
		uintptr(unsafe.Pointer(&returned)),
	)
	if r == 0 {
		return nil, lastError("EnumPrinters", callErr)
	}

	infos := unsafe.Slice((*printerInfo4)(unsafe.Pointer(&buf[0])), returned)
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, windows.UTF16PtrToString(info.PrinterName))
	}
	return names, nil
}

// --- GDI device context ---

type gdiCanvas struct {
	hdc   uintptr
	fonts []uintptr
}

func (c *gdiCanvas) StartDoc(docName string) error {
	name, err := windows.UTF16PtrFromString(docName)
	if err != nil {
		return err
	}
	di := gdiDocInfo{DocName: name}
	di.Size = int32(unsafe.Sizeof(di))
	r, _, callErr := procStartDocW.Call(c.hdc, uintptr(unsafe.Pointer(&di)))
	if int32(r) <= 0 {
		return lastError("StartDoc", callErr)
	}
	return nil
}

func (c *gdiCanvas) StartPage() error {
	r, _, callErr := procStartPage.Call(c.hdc)
	if int32(r) <= 0 {
		return lastError("StartPage", callErr)
	}
	return nil
}

func (c *gdiCanvas) SelectFont(f Font) error {
	face, err := windows.UTF16PtrFromString(f.Family)
	if err != nil {
		return err
	}
	font, _, callErr := procCreateFontW.Call(
		uintptr(f.Height),
		0,
		uintptr(f.Escapement),
		uintptr(f.Escapement), // orientation follows escapement
		uintptr(f.Weight),
		0, 0, 0,
		defaultCharset,
		0, 0, 0, 0,
		uintptr(unsafe.Pointer(face)),
	)
	if font == 0 {
		return lastError("CreateFont", callErr)
	}
	c.fonts = append(c.fonts, font)

	prev, _, callErr := procSelectObject.Call(c.hdc, font)
	if prev == 0 || prev == hgdiError {
		return lastError("SelectObject", callErr)
	}
	return nil
}

func (c *gdiCanvas) TextOut(x, y int, text string) error {
	s, err := windows.UTF16FromString(text)
	if err != nil {
		return err
	}
	if len(s) <= 1 {
		return nil
	}
	r, _, callErr := procTextOutW.Call(
		c.hdc,
		uintptr(x),
		uintptr(y),
		uintptr(unsafe.Pointer(&s[0])),
		uintptr(len(s)-1),
	)
	if r == 0 {
		return lastError("TextOut", callErr)
	}
	return nil
}

func (c *gdiCanvas) EndPage() error {
	r, _, callErr := procEndPage.Call(c.hdc)
	if int32(r) <= 0 {
		return lastError("EndPage", callErr)
	}
	return nil
}

func (c *gdiCanvas) EndDoc() error {
	r, _, callErr := procEndDoc.Call(c.hdc)
	if int32(r) <= 0 {
		return lastError("EndDoc", callErr)
	}
	return nil
}

// Close deletes the DC before the fonts so none of them is still selected.
func (c *gdiCanvas) Close() error {
	r, _, callErr := procDeleteDC.Call(c.hdc)
	for _, font := range c.fonts {
		procDeleteObject.Call(font)
	}
	c.fonts = nil
	if r == 0 {
		return lastError("DeleteDC", callErr)
	}
	return nil
}

// --- Spooler handle ---

type winSpool struct {
	handle uintptr
}

func (s *winSpool) StartDoc(docName, dataType string) (int, error) {
	name, err := windows.UTF16PtrFromString(docName)
	if err != nil {
		return 0, err
	}
	di := docInfo1{DocName: name}
	if dataType != "" {
		if di.Datatype, err = windows.UTF16PtrFromString(dataType); err != nil {
			return 0, err
		}
	}
	r, _, callErr := procStartDocPrinterW.Call(s.handle, 1, uintptr(unsafe.Pointer(&di)))
	if r == 0 {
		return 0, lastError("StartDocPrinter", callErr)
	}
	return int(r), nil
}

func (s *winSpool) StartPage() error {
	r, _, callErr := procStartPagePrinter.Call(s.handle)
	if r == 0 {
		return lastError("StartPagePrinter", callErr)
	}
	return nil
}

func (s *winSpool) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var written uint32
	r, _, callErr := procWritePrinter.Call(
		s.handle,
		uintptr(unsafe.Pointer(&p[0])),
		uintptr(len(p)),
		uintptr(unsafe.Pointer(&written)),
	)
	if r == 0 {
		return int(written), lastError("WritePrinter", callErr)
	}
	return int(written), nil
}

func (s *winSpool) EndPage() error {
	r, _, callErr := procEndPagePrinter.Call(s.handle)
	if r == 0 {
		return lastError("EndPagePrinter", callErr)
	}
	return nil
}

func (s *winSpool) EndDoc() error {
	r, _, callErr := procEndDocPrinter.Call(s.handle)
	if r == 0 {
		return lastError("EndDocPrinter", callErr)
	}
	return nil
}

func (s *winSpool) Close() error {
	r, _, callErr := procClosePrinter.Call(s.handle)
	if r == 0 {
		return lastError("ClosePrinter", callErr)
	}
	return nil
}

func lastError(op string, callErr error) error {
	var errno syscall.Errno
	if errors.As(callErr, &errno) && errno != 0 {
		return &OSError{Op: op, Code: int(errno), Err: errno}
	}
	return fmt.Errorf("printer: %s failed", op)
}
