package evolve

import "github.com/pkg/errors"

// errorf constructs a new error annotated with a stack trace, following the
// same github.com/pkg/errors idiom the teacher's configuration loader uses.
func errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// wrap annotates err with message and a stack trace, or returns nil if err is nil.
func wrap(err error, message string) error {
	return errors.Wrap(err, message)
}
