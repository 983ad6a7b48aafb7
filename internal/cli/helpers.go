package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/corkboard/internal/client"
	"github.com/thenoetrevino/corkboard/internal/controller"
	"github.com/thenoetrevino/corkboard/internal/sortable"
)

// AddGlobalFlags registers the flags every subcommand understands.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("server", "", "Board server URL (overrides server.base_url)")
	flags.String("board", "", "Board ID (overrides server.board_id)")

	// Agent-friendly flags
	flags.Bool("json", false, "Output in JSON format")
	flags.Bool("quiet", false, "Minimal output (IDs only)")
}

// Fail shows err through f and returns it tagged with code.
func Fail(f *OutputFormatter, code int, errCode string, err error) error {
	return FailWithSuggestion(f, code, errCode, err, "")
}

// FailWithSuggestion is Fail with a hint for the user.
func FailWithSuggestion(f *OutputFormatter, code int, errCode string, err error, suggestion string) error {
	if fmtErr := f.ErrorWithSuggestion(errCode, err.Error(), suggestion); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return &CodedError{Code: code, Err: err}
}

// ReportWarnings prints the session's non-fatal failures.
func ReportWarnings(f *OutputFormatter, s *Session) {
	for _, w := range s.Warnings() {
		var opErr *OpError
		if !errors.As(w, &opErr) {
			f.Warn(w.Error())
			continue
		}
		p := client.Classify(opErr.Err)
		f.Warn(fmt.Sprintf("%s failed: %s (the change was saved)", controller.OpLabel(opErr.Op), p.Message))
	}
}

// FailOp reports an error from a session or a controller operation. Server
// failures are described the way the board shows them, with a hint.
func FailOp(f *OutputFormatter, errCode string, err error) error {
	var opErr *OpError
	if errors.As(err, &opErr) {
		p := client.Classify(opErr.Err)
		msg := fmt.Errorf("%s failed: %s", controller.OpLabel(opErr.Op), p.Message)
		return FailWithSuggestion(f, opExitCode(opErr.Err, p), errCode, msg, p.Hint)
	}

	code := ExitError
	switch {
	case errors.Is(err, sortable.ErrOutsideHandle), errors.Is(err, sortable.ErrFiltered),
		errors.Is(err, sortable.ErrNotDraggable), errors.Is(err, sortable.ErrNotSortable),
		errors.Is(err, sortable.ErrGroupMismatch):
		code = ExitValidation
	case errors.Is(err, controller.ErrBlankName):
		code = ExitValidation
	}
	return Fail(f, code, errCode, err)
}

func opExitCode(err error, p *client.Problem) int {
	if errors.Is(err, controller.ErrMissingAttr) {
		return ExitDataErr
	}
	switch p.Code {
	case client.ProblemNotFound:
		return ExitNotFound
	case client.ProblemRejected:
		return ExitValidation
	default:
		return ExitError
	}
}

// OpenSession is Open with failures reported through f.
func OpenSession(cmd *cobra.Command, f *OutputFormatter) (*Session, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, FailWithSuggestion(f, ExitUsage, "CONFIG_ERROR", err, "Pass --server or set server.base_url in config.yaml")
	}
	s, err := NewSession(cmd.Context(), cfg)
	if err != nil {
		return nil, FailOp(f, "BOARD_LOAD_ERROR", err)
	}
	return s, nil
}

// ParsePosition validates a --position value.
func ParsePosition(f *OutputFormatter, position int) error {
	if position < 0 {
		return Fail(f, ExitValidation, "INVALID_POSITION", fmt.Errorf("position must not be negative, got %d", position))
	}
	return nil
}

// ParseIDArg validates a numeric id argument.
func ParseIDArg(f *OutputFormatter, kind, arg string) (string, error) {
	if _, err := strconv.ParseInt(arg, 10, 64); err != nil {
		return "", Fail(f, ExitValidation, "INVALID_ID", fmt.Errorf("%s id must be a number, got %q", kind, arg))
	}
	return arg, nil
}
