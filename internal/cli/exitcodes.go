package cli

import (
	"errors"
	"io/fs"

	"github.com/vmittal27/mkforge/pkg/parse"
	"github.com/vmittal27/mkforge/pkg/runner"
)

// Exit codes for mkforge.
const (
	// ExitSuccess indicates successful execution with every file parsed.
	ExitSuccess = 0

	// ExitParseErrors indicates the run completed but some files failed.
	ExitParseErrors = 1

	// ExitUsageError indicates invalid command-line usage.
	ExitUsageError = 2

	// ExitBadArguments indicates a flag or argument value that parsed but
	// names something unknown, such as an unregistered flavor.
	ExitBadArguments = 64

	// ExitEncodingError indicates a file whose content could not be decoded.
	ExitEncodingError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrUsage marks errors caused by malformed command-line usage.
var ErrUsage = errors.New("invalid usage")

// ErrBadArguments marks errors caused by argument values that name
// something unknown.
var ErrBadArguments = errors.New("bad arguments")

// ExitError carries a specific exit code through cobra's error return.
// Commands return it after reporting the failure themselves, so main can
// exit with Code without printing anything further.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromResult determines the exit code for a completed run.
// A run over a single file surfaces that file's error kind; runs over
// several files collapse any mix of failures to ExitParseErrors.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasErrors() {
		return ExitSuccess
	}

	if len(result.Files) == 1 {
		if code, ok := exitCodeForFileError(result.Files[0].Error); ok {
			return code
		}
	}

	return ExitParseErrors
}

// ExitCodeFromError maps an error returned by Execute to a process exit
// code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errors.Is(err, ErrUsage) {
		return ExitUsageError
	}
	if errors.Is(err, ErrBadArguments) {
		return ExitBadArguments
	}

	if code, ok := exitCodeForFileError(err); ok {
		return code
	}

	return ExitInternalError
}

// exitCodeForFileError classifies the two library error kinds. Raw OS file
// errors, such as a stat failure during discovery, count as I/O too.
func exitCodeForFileError(err error) (int, bool) {
	var encErr *parse.EncodingError
	if errors.As(err, &encErr) {
		return ExitEncodingError, true
	}

	var readErr *parse.ReadError
	if errors.As(err, &readErr) {
		return ExitIOError, true
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ExitIOError, true
	}

	return 0, false
}
