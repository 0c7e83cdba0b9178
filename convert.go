package paramparse

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

const (
	defaultTimeFormat = "2006-01-02 15:04:05" // no TimeZone!
)

// Convertible lists the types the typed handlers convert arguments to.
type Convertible interface {
	string | bool | int | float64 | time.Time | time.Duration
}

// ConversionError is recorded as the result of a typed handler whose
// argument could not be converted.
type ConversionError struct {
	Type  string
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Value, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// As returns a Handler converting each argument to T. The result is a
// single T for one argument, and a []T otherwise. If a conversion fails,
// the result is a *ConversionError.
//
// For T == bool, a missing (empty) value converts to true, so As[bool]
// works with Fixed(0) switches.
func As[T Convertible]() Handler {
	return convertHandler[T]("")
}

// Time returns a Handler converting arguments to time.Time using layout,
// or "2006-01-02 15:04:05" if layout is empty.
func Time(layout string) Handler {
	return convertHandler[time.Time](layout)
}

// Strings returns a Handler recording all arguments as a []string, even
// when there is only one.
func Strings() Handler {
	return func(args []string) any {
		return slices.Clone(args)
	}
}

// Flag returns a Handler that ignores its arguments and records v.
func Flag(v any) Handler {
	return func([]string) any {
		return v
	}
}

func convertHandler[T Convertible](format string) Handler {
	return func(args []string) any {
		if len(args) == 0 {
			v, err := convertTo[T]("", format)
			if err != nil {
				return err
			}
			return v
		}

		out := make([]T, 0, len(args))
		for _, arg := range args {
			v, err := convertTo[T](arg, format)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		if len(out) == 1 {
			return out[0]
		}
		return out
	}
}

// ConvertTo converts value to T. Conversion to time.Time uses the given
// format, unless it is empty.
func convertTo[T Convertible](value, format string) (T, error) {
	var zero T
	var v any
	var err error

	switch any(zero).(type) {
	case string:
		v = value

	case bool:
		if value == "" {
			v = true
		} else {
			v, err = strconv.ParseBool(value)
		}

	case int:
		v, err = strconv.Atoi(value)

	case float64:
		v, err = strconv.ParseFloat(value, 64)

	case time.Time:
		if format == "" {
			format = defaultTimeFormat
		}
		v, err = time.Parse(format, value)

	case time.Duration:
		v, err = time.ParseDuration(value)
	}

	if err != nil {
		return zero, &ConversionError{
			Type:  fmt.Sprintf("%T", zero),
			Value: value,
			Err:   err,
		}
	}
	return v.(T), nil
}
