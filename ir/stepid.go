package ir

import "fmt"

// StepID formats a 1-based step ordinal per spec §6: "STEP_ followed by a
// two-digit zero-padded ordinal (three-digit after 99)".
func StepID(ordinal int) string {
	if ordinal <= 99 {
		return fmt.Sprintf("STEP_%02d", ordinal)
	}
	return fmt.Sprintf("STEP_%03d", ordinal)
}

// assertID mirrors StepID's formatting for assertions, which get their own
// per-test ordinal sequence (spec §6 only defines the stepId format
// explicitly; assertId follows the same convention for consistency).
func assertID(ordinal int) string {
	if ordinal <= 99 {
		return fmt.Sprintf("ASSERT_%02d", ordinal)
	}
	return fmt.Sprintf("ASSERT_%03d", ordinal)
}
