package recording

import (
	"image"
	"io"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/legend"
)

// Backend is a legend.Canvas that produces output: pixels, a document, a
// file. Backends are created by name with NewBackend and register
// themselves with Register from init.
type Backend interface {
	legend.Canvas

	// Begin prepares a width × height output. It must be called before any
	// drawing.
	Begin(width, height int) error

	// End finishes the output. Output methods are valid after End.
	End() error
}

// ConfigurableBackend is a Backend whose output options can be set after
// NewBackend created it. Setters must be called before Begin.
type ConfigurableBackend interface {
	Backend

	// SetScaleFactor sets the device pixels per legend unit.
	SetScaleFactor(s float64)

	// SetBackground fills the output with c on Begin.
	SetBackground(c bivariate.Color)
}

// WriterBackend is a Backend that can stream its output.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered output to w.
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend is a Backend that can save its output to a file.
type FileBackend interface {
	Backend

	SaveToFile(path string) error
}

// ImageBackend is a Backend with pixel access to its output.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before Begin.
	Image() image.Image
}
