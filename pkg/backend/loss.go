package backend

import "fmt"

// Typed explanation for the loss of an executor.
// Exactly two variants exist, ProcessExited and ConnectionLost.
// Consumers must type switch over both.
type LossReason interface {
	fmt.Stringer

	// Restricts the variant set to this package.
	lossReason()
}

// The executor process terminated with a known exit code.
type ProcessExited struct {
	Code int
}

func (r ProcessExited) String() string {
	return fmt.Sprintf("executor process exited with code %d", r.Code)
}

func (ProcessExited) lossReason() {}

// The connection to the executor was severed before an exit code was seen.
type ConnectionLost struct {
	Message string
}

func (r ConnectionLost) String() string {
	if r.Message == "" {
		return "connection to executor lost"
	}
	return fmt.Sprintf("connection to executor lost: %s", r.Message)
}

func (ConnectionLost) lossReason() {}

// Classify a raw executor removal signal into a loss reason.
// A present exit code yields ProcessExited with the code preserved,
// an absent exit code yields ConnectionLost with the message preserved.
func ClassifyLoss(exitCode *int, message string) LossReason {
	if exitCode != nil {
		return ProcessExited{Code: *exitCode}
	}
	return ConnectionLost{Message: message}
}

// Metric label for a loss reason variant.
func lossLabel(reason LossReason) string {
	switch reason.(type) {
	case ProcessExited:
		return "exited"
	case ConnectionLost:
		return "connection_lost"
	default:
		return "unknown"
	}
}
