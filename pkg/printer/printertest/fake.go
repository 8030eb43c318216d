// Package printertest provides an in-memory printer.Driver for tests.
package printertest

import (
	"sync"

	"github.com/sangkips/label-bridge/pkg/printer"
)

// Operation names accepted by FakeDriver.Fail.
const (
	OpOpenDC      = "OpenDC"
	OpOpenPrinter = "OpenPrinter"
	OpStartDoc    = "StartDoc"
	OpStartPage   = "StartPage"
	OpSelectFont  = "SelectFont"
	OpTextOut     = "TextOut"
	OpWrite       = "Write"
	OpEndPage     = "EndPage"
	OpEndDoc      = "EndDoc"
	OpEnum        = "EnumPrinters"
)

// TextCall is one recorded TextOut.
type TextCall struct {
	X, Y int
	Text string
	Font printer.Font
}

// FakeDriver records every call and fails the operations it is told to.
type FakeDriver struct {
	mu sync.Mutex

	Printers []string

	failures map[string][]error
	// ShortWrite makes Write report one byte less than requested.
	ShortWrite bool

	Opens     int
	Closes    int
	Calls     []string
	Texts     []TextCall
	DataTypes []string
	DocNames  []string
	Written   []byte
}

// NewFakeDriver creates a driver that knows the given printers.
func NewFakeDriver(printers ...string) *FakeDriver {
	return &FakeDriver{
		Printers: printers,
		failures: make(map[string][]error),
	}
}

// Fail queues errors for op; each call to op consumes one. A nil entry lets
// that call succeed.
func (f *FakeDriver) Fail(op string, errs ...error) *FakeDriver {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = append(f.failures[op], errs...)
	return f
}

// FailCode queues an OS error with the given code for op.
func (f *FakeDriver) FailCode(op string, code int) *FakeDriver {
	return f.Fail(op, printer.NewOSError(op, code))
}

// Balanced reports whether every opened handle was closed exactly once.
func (f *FakeDriver) Balanced() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Opens == f.Closes
}

func (f *FakeDriver) step(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, op)
	queue := f.failures[op]
	if len(queue) == 0 {
		return nil
	}
	err := queue[0]
	f.failures[op] = queue[1:]
	return err
}

func (f *FakeDriver) OpenDC(name string) (printer.Canvas, error) {
	if err := f.step(OpOpenDC); err != nil {
		return nil, err
	}
	if !f.knows(name) {
		return nil, printer.NewOSError("CreateDC", printer.CodeInvalidPrinterName)
	}
	f.mu.Lock()
	f.Opens++
	f.mu.Unlock()
	return &fakeCanvas{d: f}, nil
}

func (f *FakeDriver) OpenPrinter(name string) (printer.Spool, error) {
	if err := f.step(OpOpenPrinter); err != nil {
		return nil, err
	}
	if !f.knows(name) {
		return nil, printer.NewOSError("OpenPrinter", printer.CodeInvalidPrinterName)
	}
	f.mu.Lock()
	f.Opens++
	f.mu.Unlock()
	return &fakeSpool{d: f}, nil
}

func (f *FakeDriver) EnumPrinters() ([]string, error) {
	if err := f.step(OpEnum); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Printers...), nil
}

func (f *FakeDriver) knows(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.Printers {
		if p == name {
			return true
		}
	}
	return false
}

func (f *FakeDriver) close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "Close")
	f.Closes++
	return nil
}

type fakeCanvas struct {
	d    *FakeDriver
	font printer.Font
}

func (c *fakeCanvas) StartDoc(docName string) error {
	if err := c.d.step(OpStartDoc); err != nil {
		return err
	}
	c.d.mu.Lock()
	c.d.DocNames = append(c.d.DocNames, docName)
	c.d.mu.Unlock()
	return nil
}

func (c *fakeCanvas) StartPage() error { return c.d.step(OpStartPage) }

func (c *fakeCanvas) SelectFont(f printer.Font) error {
	if err := c.d.step(OpSelectFont); err != nil {
		return err
	}
	c.font = f
	return nil
}

func (c *fakeCanvas) TextOut(x, y int, text string) error {
	if err := c.d.step(OpTextOut); err != nil {
		return err
	}
	c.d.mu.Lock()
	c.d.Texts = append(c.d.Texts, TextCall{X: x, Y: y, Text: text, Font: c.font})
	c.d.mu.Unlock()
	return nil
}

func (c *fakeCanvas) EndPage() error { return c.d.step(OpEndPage) }
func (c *fakeCanvas) EndDoc() error  { return c.d.step(OpEndDoc) }
func (c *fakeCanvas) Close() error   { return c.d.close() }

type fakeSpool struct {
	d *FakeDriver
}

func (s *fakeSpool) StartDoc(docName, dataType string) (int, error) {
	s.d.mu.Lock()
	s.d.DataTypes = append(s.d.DataTypes, dataType)
	s.d.mu.Unlock()
	if err := s.d.step(OpStartDoc); err != nil {
		return 0, err
	}
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.DocNames = append(s.d.DocNames, docName)
	return len(s.d.DocNames), nil
}

func (s *fakeSpool) StartPage() error { return s.d.step(OpStartPage) }

func (s *fakeSpool) Write(p []byte) (int, error) {
	if err := s.d.step(OpWrite); err != nil {
		return 0, err
	}
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	n := len(p)
	if s.d.ShortWrite && n > 0 {
		n--
	}
	s.d.Written = append(s.d.Written, p[:n]...)
	return n, nil
}

func (s *fakeSpool) EndPage() error { return s.d.step(OpEndPage) }
func (s *fakeSpool) EndDoc() error  { return s.d.step(OpEndDoc) }
func (s *fakeSpool) Close() error   { return s.d.close() }
