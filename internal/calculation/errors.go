package calculation

import (
	"errors"
	"fmt"
)

// ErrNotComputable marks the expected "cannot compute" outcomes. Callers skip the row or
// show a blank instead of treating it as a failure.
var ErrNotComputable = errors.New("premium not computable")

var (
	ErrNoSalary               = fmt.Errorf("%w: salary is zero or missing", ErrNotComputable)
	ErrNoBonusAmount          = fmt.Errorf("%w: bonus amount is zero or missing", ErrNotComputable)
	ErrMissingApplicableMonth = fmt.Errorf("%w: applicable month is missing", ErrNotComputable)
	ErrMissingBirthday        = fmt.Errorf("%w: birthday is missing", ErrNotComputable)
	ErrNoGrade                = fmt.Errorf("%w: no grade bracket matches", ErrNotComputable)
	ErrNoQualifyingMonths     = fmt.Errorf("%w: no month meets the work-day floor", ErrNotComputable)
)

// IsNotComputable reports whether err is one of the expected "no result" outcomes
func IsNotComputable(err error) bool {
	return errors.Is(err, ErrNotComputable)
}
