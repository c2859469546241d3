package models

import "fmt"

// OutcomeKind tags the result of an acquisition
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeNotFound
	OutcomeTransportError
	OutcomeBuildFailure
	OutcomeIntegrityError
)

// String returns the string representation of OutcomeKind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "Success"
	case OutcomeNotFound:
		return "NotFound"
	case OutcomeTransportError:
		return "TransportError"
	case OutcomeBuildFailure:
		return "BuildFailure"
	case OutcomeIntegrityError:
		return "IntegrityError"
	default:
		return "Unknown"
	}
}

// Outcome is what an acquisition strategy hands back to the orchestrator.
// Only the fields relevant to Kind are set.
type Outcome struct {
	Kind   OutcomeKind
	Target string

	LocalPath  string // Success
	StatusCode int    // TransportError, when the server answered
	ExitCode   int    // BuildFailure
	Err        error  // TransportError, BuildFailure, IntegrityError
}

// Success builds a successful outcome
func Success(target, localPath string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Target: target, LocalPath: localPath}
}

// NotFound builds an outcome for a target with no published artifact
func NotFound(target string) Outcome {
	return Outcome{Kind: OutcomeNotFound, Target: target}
}

// TransportError builds a network failure outcome
func TransportError(target string, status int, err error) Outcome {
	return Outcome{Kind: OutcomeTransportError, Target: target, StatusCode: status, Err: err}
}

// BuildFailure builds a toolchain failure outcome
func BuildFailure(target string, exitCode int, err error) Outcome {
	return Outcome{Kind: OutcomeBuildFailure, Target: target, ExitCode: exitCode, Err: err}
}

// IntegrityError builds a verification failure outcome
func IntegrityError(target string, err error) Outcome {
	return Outcome{Kind: OutcomeIntegrityError, Target: target, Err: err}
}

// Fatal reports whether the outcome must fail the run
func (o Outcome) Fatal() bool {
	return o.Kind != OutcomeSuccess && o.Kind != OutcomeNotFound
}

// String describes the outcome including status or exit code
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf("%s: %s -> %s", o.Kind, o.Target, o.LocalPath)
	case OutcomeNotFound:
		return fmt.Sprintf("%s: no published artifact for %s", o.Kind, o.Target)
	case OutcomeTransportError:
		if o.StatusCode != 0 {
			return fmt.Sprintf("%s: %s: HTTP %d: %v", o.Kind, o.Target, o.StatusCode, o.Err)
		}
		return fmt.Sprintf("%s: %s: %v", o.Kind, o.Target, o.Err)
	case OutcomeBuildFailure:
		if o.Err != nil {
			return fmt.Sprintf("%s: %s: exit code %d: %v", o.Kind, o.Target, o.ExitCode, o.Err)
		}
		return fmt.Sprintf("%s: %s: exit code %d", o.Kind, o.Target, o.ExitCode)
	default:
		return fmt.Sprintf("%s: %s: %v", o.Kind, o.Target, o.Err)
	}
}

// OutcomeError presents a fatal outcome as an error
type OutcomeError struct {
	Outcome Outcome
}

func (e *OutcomeError) Error() string {
	return e.Outcome.String()
}

// Unwrap returns the outcome's cause
func (e *OutcomeError) Unwrap() error {
	return e.Outcome.Err
}

// ErrorType returns the error category of a fatal outcome
func (o Outcome) ErrorType() ErrorType {
	switch o.Kind {
	case OutcomeTransportError:
		return ErrTransport
	case OutcomeBuildFailure:
		return ErrBuild
	case OutcomeIntegrityError:
		return ErrIntegrity
	default:
		return ErrUnknown
	}
}
