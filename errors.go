package paramparse

import (
	"errors"
	"fmt"
)

// Code classifies a ParseError.
type Code int

// Error codes, stable across releases.
const (
	InvalidArgumentCountAlias             Code = 60001
	InvalidArgumentCountParameter         Code = 60002
	InvalidArgumentCountVariadicAlias     Code = 60003
	InvalidArgumentCountVariadicParameter Code = 60004
	MissingRequiredArgument               Code = 60005
)

func (c Code) String() string {
	switch c {
	case InvalidArgumentCountAlias:
		return "invalid argument count (alias)"
	case InvalidArgumentCountParameter:
		return "invalid argument count"
	case InvalidArgumentCountVariadicAlias:
		return "invalid variadic argument count (alias)"
	case InvalidArgumentCountVariadicParameter:
		return "invalid variadic argument count"
	case MissingRequiredArgument:
		return "missing required argument"
	}
	return fmt.Sprintf("code %d", int(c))
}

// Sentinel errors, matched by ParseError through errors.Is.
var (
	// ErrMissingRequiredArgument matches MissingRequiredArgument errors.
	ErrMissingRequiredArgument = errors.New("missing required argument")

	// ErrInvalidArgumentCount matches all four argument count codes.
	ErrInvalidArgumentCount = errors.New("invalid argument count")
)

// ParseError is the condition raised while parsing. It is passed to the
// error handler of a Parser, or returned from Parse if none is set.
type ParseError struct {
	Code      Code
	Parameter *Parameter // the offending parameter, or nil
	Message   string
}

func (e *ParseError) Error() string {
	name := "UNKNOWN"
	if e.Parameter != nil {
		name = e.Parameter.Name()
	}
	return fmt.Sprintf("[%d] (parameter: %s) : %s", int(e.Code), name, e.Message)
}

func (e *ParseError) Unwrap() error {
	switch e.Code {
	case MissingRequiredArgument:
		return ErrMissingRequiredArgument
	case InvalidArgumentCountAlias, InvalidArgumentCountParameter,
		InvalidArgumentCountVariadicAlias, InvalidArgumentCountVariadicParameter:
		return ErrInvalidArgumentCount
	}
	return nil
}

func missingRequiredError(p *Parameter) *ParseError {
	return &ParseError{
		Code:      MissingRequiredArgument,
		Parameter: p,
		Message:   "Missing required argument: " + p.Name(),
	}
}

// ArgumentCountError builds the error for a parameter that received got
// arguments. The code depends on the arity and on whether the parameter
// was reached through an alias.
func argumentCountError(p *Parameter, got int) *ParseError {
	var code Code
	var msg string

	if p.arity.variadic {
		code = InvalidArgumentCountVariadicParameter
		if p.HasParent() {
			code = InvalidArgumentCountVariadicAlias
		}
		msg = fmt.Sprintf("Invalid argument count. Expecting 1+ but received %d.", got)
	} else {
		code = InvalidArgumentCountParameter
		if p.HasParent() {
			code = InvalidArgumentCountAlias
		}
		msg = fmt.Sprintf("Invalid argument count. Expecting %d but received %d.",
			p.arity.count, got)
	}

	return &ParseError{Code: code, Parameter: p, Message: msg}
}
