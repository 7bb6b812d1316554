package deepval

import "fmt"

// InvalidArgumentError reports a merge invoked with a target that is not a
// plain mapping. It is returned synchronously; retrying cannot help.
type InvalidArgumentError struct {
	// What names the offending parameter.
	What string
	// Got is the kind that was supplied. KindNil with Absent set means a
	// nil interface was passed.
	Got    Kind
	Absent bool
}

func (e *InvalidArgumentError) Error() string {
	if e.Absent {
		return fmt.Sprintf("%s must be a mapping, got no value", e.What)
	}
	return fmt.Sprintf("%s must be a mapping, got %s", e.What, e.Got)
}

// DepthExceededError reports nested-merge recursion past the configured
// limit. The limit is carried for diagnostics.
type DepthExceededError struct {
	Limit int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("merge recursion exceeded max depth %d", e.Limit)
}
