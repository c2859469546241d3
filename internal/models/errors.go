package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrUnknown ErrorType = iota
	ErrUnsupportedPlatform
	ErrTransport
	ErrBuild
	ErrIntegrity
	ErrInvalidConfig
	ErrFileOp
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrUnsupportedPlatform:
		return "UnsupportedPlatform"
	case ErrTransport:
		return "Transport"
	case ErrBuild:
		return "Build"
	case ErrIntegrity:
		return "Integrity"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrFileOp:
		return "FileOp"
	default:
		return "Unknown"
	}
}

// ExitCode returns the process exit code used for this error category
func (e ErrorType) ExitCode() int {
	switch e {
	case ErrUnsupportedPlatform:
		return 2
	case ErrTransport:
		return 3
	case ErrBuild:
		return 4
	case ErrIntegrity:
		return 5
	case ErrInvalidConfig:
		return 6
	default:
		return 1
	}
}

// InstallError represents an error during artifact installation
type InstallError struct {
	Type ErrorType
	Host string
	Err  error
}

// Error implements the error interface
func (e *InstallError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Host, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *InstallError) Unwrap() error {
	return e.Err
}

// UnsupportedPlatformError is returned when no target exists for a host
type UnsupportedPlatformError struct {
	OS   OS
	Arch Arch
	Libc Libc
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %s", HostFacts{OS: e.OS, Arch: e.Arch, Libc: e.Libc})
}
