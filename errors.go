package qrforge

import "fmt"

// CapacityExceededError reports input that does not fit any symbol
// version at the effective error-correction level. Retrying cannot
// help; the caller must shorten the input or lower the level.
type CapacityExceededError struct {
	Length int    // input length in bytes
	Level  string // effective error-correction level
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("input of %d bytes exceeds symbol capacity at level %s", e.Length, e.Level)
}

// LogoOverlayTooLargeError reports a logo reservation that the
// error-correction budget cannot absorb. The caller must shrink the
// logo or raise the error-correction level.
type LogoOverlayTooLargeError struct {
	Fraction float64 // requested logo side length, as a fraction of the symbol side
	Max      float64 // largest fraction the level supports
	Level    string
}

func (e *LogoOverlayTooLargeError) Error() string {
	return fmt.Sprintf("logo fraction %.2f exceeds the %.2f budget at level %s", e.Fraction, e.Max, e.Level)
}
