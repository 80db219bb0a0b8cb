package owtypes

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError through errors.Is.
var ErrParse = errors.New("markup did not match any known layout")

// ParseError reports that a page did not have the structure the extractor expected.
//
// Component names the piece of the page that failed (ex. "rank", "endorsement") so that a
// broken selector can be found quickly when upstream markup changes.
type ParseError struct {
	Component string
	Reason    string
}

func NewParseError(component, reason string, args ...any) *ParseError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &ParseError{Component: component, Reason: reason}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Component, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// DeserializeError wraps a malformed JSON payload from upstream.
type DeserializeError struct {
	Source string
	Err    error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("deserialize %s: %s", e.Source, e.Err.Error())
}

func (e *DeserializeError) Unwrap() error {
	return e.Err
}

// InvalidBattletagError is returned when a string does not follow the `name#number` or
// `name-number` grammar.
type InvalidBattletagError struct {
	Value string
}

func (e *InvalidBattletagError) Error() string {
	return fmt.Sprintf("invalid battletag '%s'", e.Value)
}
