// Package ui provides theme and color support for the command's output.
// It defines ANSI color schemes for the line-oriented CLI and a lipgloss
// palette for the calibration dashboard, both switched off by -no-color
// and NO_COLOR.
package ui
