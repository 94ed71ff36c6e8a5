package analysis

import "fmt"

// CycleDetectionError means no repeated mass was found before the table
// ended: the table is malformed or holds a single cycle.
type CycleDetectionError struct {
	Rows int
}

func (e *CycleDetectionError) Error() string {
	return fmt.Sprintf("unable to detect the start of the second cycle (%d rows scanned)", e.Rows)
}

// MassNotFoundError means the requested reference mass is absent from the
// first cycle of the table.
type MassNotFoundError struct {
	Mass int
}

func (e *MassNotFoundError) Error() string {
	return fmt.Sprintf("mass %d not found in the cycle", e.Mass)
}

// ReservedCodeError means a reserved basis selector was passed where a
// real mass was expected.
type ReservedCodeError struct {
	Code int
}

func (e *ReservedCodeError) Error() string {
	return fmt.Sprintf("code %d is the reserved total-sum basis selector, not a mass", e.Code)
}

// LengthMismatchError means two paired per-channel sequences differ in
// length and cannot be combined element-wise.
type LengthMismatchError struct {
	LenA, LenB int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("sequences are not the same length (%d vs %d)", e.LenA, e.LenB)
}
