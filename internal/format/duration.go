// Package format renders durations and operand sizes for terminal output.
package format

import (
	"fmt"
	"strconv"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display: nanoseconds
// below a microsecond, microseconds below a millisecond, milliseconds below a
// second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatLimbs renders a limb count with its size in bits for the given word
// width, e.g. "48 limbs (3072 bits)".
func FormatLimbs(limbs, wordBits int) string {
	unit := "limbs"
	if limbs == 1 {
		unit = "limb"
	}
	return strconv.Itoa(limbs) + " " + unit + " (" + strconv.Itoa(limbs*wordBits) + " bits)"
}
