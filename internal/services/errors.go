package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration      = errors.New("configuration error")
	ErrValidation         = errors.New("validation error")
	ErrIncompleteMetadata = errors.New("incomplete metadata")
	ErrTransport          = errors.New("transport error")
	ErrIO                 = errors.New("i/o error")
	ErrSerialization      = errors.New("serialization error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		if err != nil {
			return fmt.Errorf("%s: %w", detail, err)
		}
		return errors.New(detail)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Exit codes follow the sysexits(3) conventions.
const (
	ExitFailure     = 1
	ExitUsage       = 64
	ExitDataErr     = 65
	ExitUnavailable = 69
	ExitIOErr       = 74
	ExitProtocol    = 76
	ExitConfig      = 78
)

// ExitCode maps a command error to the process exit status reported by the CLI.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration):
		return ExitConfig
	case errors.Is(err, ErrValidation):
		return ExitUsage
	case errors.Is(err, ErrIncompleteMetadata):
		return ExitProtocol
	case errors.Is(err, ErrTransport):
		return ExitUnavailable
	case errors.Is(err, ErrSerialization):
		return ExitDataErr
	case errors.Is(err, ErrIO):
		return ExitIOErr
	default:
		return ExitFailure
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
