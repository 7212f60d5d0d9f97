package output

import (
	"io"

	"github.com/sdejongh/desktidy/pkg/models"
)

// Formatter renders an organize report. Implementations include
// human-readable and JSON formatters; they are purely presentational
// and perform no logic the core depends on.
type Formatter interface {
	// Report renders the full report of an organize run
	Report(w io.Writer, report *models.OrganizeReport) error

	// Name returns the formatter name
	Name() string
}
