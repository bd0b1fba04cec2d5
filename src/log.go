package dxwifi

import (
	"os"

	"github.com/charmbracelet/log"
)

// Log is the package-level logger for non-fatal conditions: per-symbol
// LDPC repair-build failures, per-block RS failures, misaligned input
// lengths, skipped out-of-range ESIs, and OTI CRC mismatches during
// discovery. Callers may reassign it (e.g. to silence or redirect output
// from a CLI's -q/-v flags).
var Log = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
