package datagrid

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigurationError rejects a grid setup that cannot be laid out, such as a
// non-positive row height. Nothing is applied when it is returned.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "datagrid: invalid configuration: " + e.Reason
}

func configErrorf(format string, args ...any) error {
	return errors.WithStack(&ConfigurationError{Reason: fmt.Sprintf(format, args...)})
}

// InvalidSelectionTarget is logged when a pointer event lands on a row that
// is not bound to a valid data index. The grid clears the selection and
// refills instead of failing.
type InvalidSelectionTarget struct {
	Target    Target
	DataIndex int64
	Reason    string
}

func (e *InvalidSelectionTarget) Error() string {
	return fmt.Sprintf("datagrid: invalid selection target slot=%d row=%d index=%d: %s",
		e.Target.Slot, e.Target.Row, e.DataIndex, e.Reason)
}

// TrackKeyResolutionWarning is logged when the track-by field of a record is
// missing or unusable and the record identity is used instead.
type TrackKeyResolutionWarning struct {
	DataIndex int
	Field     string
	Reason    string
}

func (e *TrackKeyResolutionWarning) Error() string {
	return fmt.Sprintf("datagrid: track key %q of record %d: %s", e.Field, e.DataIndex, e.Reason)
}
