package main

// Process exit codes.
const (
	ExitSuccess     = 0 // Normal termination, including quit
	ExitError       = 1 // Runtime failure (database unreadable or unwritable)
	ExitConfigError = 2 // Invalid flags, config file or environment
)

// exitError carries the exit code for an error returned from a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func configError(err error) error {
	return &exitError{code: ExitConfigError, err: err}
}
