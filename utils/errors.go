package utils

import "fmt"

// InvalidArgumentError is returned when a document, stop word, or query
// fails validation: negative or duplicate document ids, control characters
// in text, malformed query words, or an empty query.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// OutOfRangeError is returned when an index or document id lies outside the
// known range, e.g. DocumentIDAt with a bad index or MatchDocument with an
// absent id.
type OutOfRangeError struct {
	Reason string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("out of range: %s", e.Reason)
}

func invalidArgumentf(format string, args ...any) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

func outOfRangef(format string, args ...any) error {
	return &OutOfRangeError{Reason: fmt.Sprintf(format, args...)}
}
