package build

import (
	"errors"
	"fmt"
)

var (
	ErrParse              = errors.New("error reading or parsing the build file")
	ErrStructuralLimit    = errors.New("extension limit reached")
	ErrMinimumCardinality = errors.New("minimum cardinality")
	ErrNotFound           = errors.New("build not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrUnknownExtension   = errors.New("unknown extension type")
)

// ParseError reports a build document that could not be loaded.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrParse, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", ErrParse, e.Reason, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// LimitError is returned when adding an extension would exceed its cap.
type LimitError struct {
	Kind  ExtensionKind
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("only %d of this extension type is allowed", e.Limit)
}

func (e *LimitError) Unwrap() error { return ErrStructuralLimit }

// CardinalityError is returned when removing the last campaign or ad group.
type CardinalityError struct {
	Entity string
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("you must have at least one %s", e.Entity)
}

func (e *CardinalityError) Unwrap() error { return ErrMinimumCardinality }
