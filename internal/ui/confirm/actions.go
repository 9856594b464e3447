package confirm

// Result carries the outcome of a confirmation.
type Result struct {
	Confirmed      bool
	Context        any // caller-provided context passed back unchanged
	SelectedOption int // index into the options list, multi-option mode only
}

// ActionMsg is emitted when the user answers the confirmation.
type ActionMsg Result
