package model

// Status represents the state of a single link download
type Status string

const (
	// StatusPending means the link is queued but the tool has not been started
	StatusPending Status = "Pending"

	// StatusInvoking means the external tool is running for the link
	StatusInvoking Status = "Invoking"

	// StatusSucceeded means the tool exited with status zero
	StatusSucceeded Status = "Succeeded"

	// StatusFailed means the tool exited non-zero or could not be started
	StatusFailed Status = "Failed"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsActive returns true while the external tool is running
func (s Status) IsActive() bool {
	return s == StatusInvoking
}

// IsFinished returns true if the status is terminal (succeeded or failed)
func (s Status) IsFinished() bool {
	return s == StatusSucceeded || s == StatusFailed
}
