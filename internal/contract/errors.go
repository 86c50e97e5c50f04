package contract

import (
	"errors"
	"fmt"
)

// MissingColumnError reports a column-contract violation: a dataset handed to
// the correlation engine lacks one of its required columns. The engine fails
// fast with this error before any matching work begins.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column: %s", e.Column)
}

// IsMissingColumn reports whether err is a MissingColumnError.
func IsMissingColumn(err error) bool {
	var target *MissingColumnError
	return errors.As(err, &target)
}

// ErrSurveyNotFound is returned by survey stores when a year has no dataset.
var ErrSurveyNotFound = errors.New("survey not found")
