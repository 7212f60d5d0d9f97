package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"

	"github.com/sdejongh/desktidy/pkg/fingerprint"
)

// FingerprintProgress renders a byte-level progress bar over the
// fingerprinting pass. The bar is shown only on interactive
// terminals; on pipes and redirects it stays silent so machine
// output is not polluted.
type FingerprintProgress struct {
	bar *pb.ProgressBar
}

// NewFingerprintProgress creates a progress bar over totalBytes.
// Pass enabled=false (for example in quiet or JSON mode) to get an
// inert instance whose callback does nothing.
func NewFingerprintProgress(w io.Writer, totalBytes int64, enabled bool) *FingerprintProgress {
	if !enabled || totalBytes <= 0 {
		return &FingerprintProgress{}
	}

	if f, ok := w.(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
		return &FingerprintProgress{}
	}

	bar := pb.New64(totalBytes)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(w)
	bar.Start()

	return &FingerprintProgress{bar: bar}
}

// Callback returns the progress function to install on a fingerprinter
func (p *FingerprintProgress) Callback() fingerprint.ProgressFunc {
	if p.bar == nil {
		return nil
	}
	return func(path string, n int64) {
		p.bar.Add64(n)
	}
}

// Finish completes and clears the bar
func (p *FingerprintProgress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
