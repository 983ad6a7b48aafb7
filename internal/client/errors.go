package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"unicode/utf8"
)

// ErrNotFound is wrapped by StatusError for 404 responses.
var ErrNotFound = errors.New("not found")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap exposes ErrNotFound for 404 responses.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

const maxErrorBody = 200

func trimBody(data []byte) string {
	s := strings.Join(strings.Fields(string(data)), " ")
	if len(s) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}

// ProblemCode categorizes a failed request.
type ProblemCode int

const (
	ProblemServer ProblemCode = iota
	ProblemNotFound
	ProblemRejected
	ProblemUnreachable
	ProblemTimeout
)

// Problem is a user-facing description of a failed request.
type Problem struct {
	Code    ProblemCode
	Message string
	Hint    string
}

// Error implements the error interface.
func (p *Problem) Error() string {
	if p.Hint != "" {
		return p.Message + ". " + p.Hint
	}
	return p.Message
}

// Classify maps request errors to a Problem.
func Classify(err error) *Problem {
	if err == nil {
		return nil
	}

	var se *StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == http.StatusNotFound:
			return &Problem{
				Code:    ProblemNotFound,
				Message: "Not found on server",
				Hint:    "The board may have changed. Refresh with r",
			}
		case se.Code >= 400 && se.Code < 500:
			return &Problem{
				Code:    ProblemRejected,
				Message: fmt.Sprintf("Server rejected the request (%d)", se.Code),
				Hint:    se.Body,
			}
		default:
			return &Problem{
				Code:    ProblemServer,
				Message: fmt.Sprintf("Server error (%d)", se.Code),
				Hint:    se.Body,
			}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Problem{
			Code:    ProblemTimeout,
			Message: "Request timed out",
			Hint:    "Raise server.request_timeout in config.yaml",
		}
	}

	var errno syscall.Errno
	var opErr *net.OpError
	if errors.As(err, &errno) && errno == syscall.ECONNREFUSED || errors.As(err, &opErr) {
		return &Problem{
			Code:    ProblemUnreachable,
			Message: "Server unreachable",
			Hint:    "Check server.base_url or set CORKBOARD_SERVER",
		}
	}

	return &Problem{
		Code:    ProblemServer,
		Message: err.Error(),
	}
}
