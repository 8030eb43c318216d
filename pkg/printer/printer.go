package printer

import (
	"fmt"
	"io"
	"net"
	"os"
	"runtime"
	"time"
)

// Driver types accepted by NewDriverFromConfig.
const (
	TypeWindows = "windows"
	TypeDevice  = "device"
	TypeNetwork = "network"
	TypeNone    = "none"
)

// DefaultType returns the driver type that makes sense for the running OS.
func DefaultType() string {
	if runtime.GOOS == "windows" {
		return TypeWindows
	}
	return TypeNone
}

// --- Device Driver (raw bytes to a device file, e.g. /dev/usb/lp0) ---

type deviceDriver struct {
	path string
}

// NewDeviceDriver creates a raw-only driver that writes to a device file.
func NewDeviceDriver(devicePath string) Driver {
	return &deviceDriver{path: devicePath}
}

func (d *deviceDriver) OpenDC(name string) (Canvas, error) {
	return nil, ErrDirectDrawUnsupported
}

func (d *deviceDriver) OpenPrinter(name string) (Spool, error) {
	f, err := os.OpenFile(d.path, os.O_WRONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &OSError{Op: "open " + d.path, Code: CodeInvalidPrinterName, Err: err}
		}
		if os.IsPermission(err) {
			return nil, &OSError{Op: "open " + d.path, Code: CodeAccessDenied, Err: err}
		}
		return nil, fmt.Errorf("printer: failed to open device %s: %w", d.path, err)
	}
	return &streamSpool{w: f}, nil
}

func (d *deviceDriver) EnumPrinters() ([]string, error) {
	if _, err := os.Stat(d.path); err != nil {
		return nil, nil
	}
	return []string{d.path}, nil
}

// --- Network Driver (dials TCP per job, e.g. 192.168.1.100:9100) ---

type networkDriver struct {
	address string
	timeout time.Duration
}

// NewNetworkDriver creates a raw-only driver that connects via TCP.
// Address should include port, e.g. "192.168.1.100:9100".
func NewNetworkDriver(address string) Driver {
	return &networkDriver{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (d *networkDriver) OpenDC(name string) (Canvas, error) {
	return nil, ErrDirectDrawUnsupported
}

func (d *networkDriver) OpenPrinter(name string) (Spool, error) {
	conn, err := net.DialTimeout("tcp", d.address, d.timeout)
	if err != nil {
		return nil, fmt.Errorf("printer: failed to connect to %s: %w", d.address, err)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return &streamSpool{w: conn}, nil
}

func (d *networkDriver) EnumPrinters() ([]string, error) {
	conn, err := net.DialTimeout("tcp", d.address, 2*time.Second)
	if err != nil {
		return nil, nil
	}
	conn.Close()
	return []string{d.address}, nil
}

// streamSpool adapts a byte stream to the Spool job lifecycle. Page and
// document boundaries carry no bytes on a raw stream.
type streamSpool struct {
	w     io.WriteCloser
	jobs  int
	inDoc bool
}

func (s *streamSpool) StartDoc(docName, dataType string) (int, error) {
	if s.inDoc {
		return 0, fmt.Errorf("printer: document %q already started", docName)
	}
	s.inDoc = true
	s.jobs++
	return s.jobs, nil
}

func (s *streamSpool) StartPage() error { return nil }

func (s *streamSpool) Write(p []byte) (int, error) {
	if !s.inDoc {
		return 0, fmt.Errorf("printer: write outside of a document")
	}
	return s.w.Write(p)
}

func (s *streamSpool) EndPage() error { return nil }

func (s *streamSpool) EndDoc() error {
	s.inDoc = false
	return nil
}

func (s *streamSpool) Close() error {
	return s.w.Close()
}

// --- Null Driver (no-op, used when no printer is attached) ---

type nullDriver struct {
	name string
}

// NewNullDriver creates a driver that accepts every job and prints nothing.
// It only knows the printer it was configured for.
func NewNullDriver(name string) Driver {
	return &nullDriver{name: name}
}

func (d *nullDriver) OpenDC(name string) (Canvas, error) {
	if name != d.name {
		return nil, NewOSError("CreateDC", CodeInvalidPrinterName)
	}
	return nullCanvas{}, nil
}

func (d *nullDriver) OpenPrinter(name string) (Spool, error) {
	if name != d.name {
		return nil, NewOSError("OpenPrinter", CodeInvalidPrinterName)
	}
	return &streamSpool{w: nopWriteCloser{io.Discard}}, nil
}

func (d *nullDriver) EnumPrinters() ([]string, error) {
	return []string{d.name}, nil
}

type nullCanvas struct{}

func (nullCanvas) StartDoc(string) error          { return nil }
func (nullCanvas) StartPage() error               { return nil }
func (nullCanvas) SelectFont(Font) error          { return nil }
func (nullCanvas) TextOut(int, int, string) error { return nil }
func (nullCanvas) EndPage() error                 { return nil }
func (nullCanvas) EndDoc() error                  { return nil }
func (nullCanvas) Close() error                   { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewDriverFromConfig creates the appropriate Driver based on type.
//
//	driverType: "windows", "device", "network", or "none"
//	printerName: the configured printer, used by the null driver
//	devicePath: device file for raw USB printing (e.g. "/dev/usb/lp0")
//	address: TCP address for network printers (e.g. "192.168.1.100:9100")
func NewDriverFromConfig(driverType, printerName, devicePath, address string) (Driver, error) {
	switch driverType {
	case TypeWindows:
		return NewWindowsDriver()
	case TypeDevice:
		if devicePath == "" {
			return nil, fmt.Errorf("printer: device path is required for device driver")
		}
		return NewDeviceDriver(devicePath), nil
	case TypeNetwork:
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network driver")
		}
		return NewNetworkDriver(address), nil
	case TypeNone, "":
		return NewNullDriver(printerName), nil
	default:
		return nil, fmt.Errorf("printer: unknown driver type %q (use windows, device, network, or none)", driverType)
	}
}
