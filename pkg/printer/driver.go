package printer

// Font describes a logical font for direct-draw rendering. Height is in
// device units and Escapement in tenths of a degree.
type Font struct {
	Family     string
	Height     int
	Weight     int
	Escapement int
}

// Driver is the capability the bridge needs from a platform print subsystem.
type Driver interface {
	// OpenDC creates a rendering context bound to the named printer.
	OpenDC(name string) (Canvas, error)
	// OpenPrinter opens a spooler handle for raw job submission.
	OpenPrinter(name string) (Spool, error)
	// EnumPrinters lists local and connected printers.
	EnumPrinters() ([]string, error)
}

// Canvas is a printer device context. Close must be called exactly once.
type Canvas interface {
	StartDoc(docName string) error
	StartPage() error
	SelectFont(f Font) error
	TextOut(x, y int, text string) error
	EndPage() error
	EndDoc() error
	Close() error
}

// Spool is an open printer handle accepting raw jobs. Close must be called
// exactly once.
type Spool interface {
	// StartDoc starts a job. An empty dataType lets the spooler pick its default.
	StartDoc(docName, dataType string) (jobID int, err error)
	StartPage() error
	Write(p []byte) (int, error)
	EndPage() error
	EndDoc() error
	Close() error
}
