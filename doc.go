/*
Package paramparse implements a command-line parser driven by a registry
of parameters. Each parameter is identified by a prefix and a name, takes
a fixed or variadic number of arguments, and has a handler that turns
those arguments into a result value.


# Parameters

A parameter is created with NewParameter, and configured by chaining:

	p := paramparse.NewParameter("--", "output", paramparse.Fixed(1),
	    func(args []string) any { return args[0] }).
	    AliasWithPrefix("-", "o").
	    SetRequired(true).
	    SetDescription("File to write results to")

The arity is either Fixed(n), for exactly n arguments, or Variadic(), for
one or more arguments. A variadic parameter collects every following token
up to the end of the command line or up to the next token that begins with
a registered prefix.

Aliases resolve to the same handler as their parameter. Results are always
recorded under the name of the parameter itself, never under the alias.

The helpers As, Time, Strings, and Flag build handlers for common cases:

	paramparse.NewParameter("--", "count", paramparse.Fixed(1), paramparse.As[int]())


# Registry and Parsing

Parameters are collected in a Registry, which is passed to a Parser:

	reg := paramparse.NewRegistry().AddMany(p, q)
	results, err := paramparse.NewParser(reg).Parse(os.Args)

The first element of the argument vector is the program path and is
ignored. Elements that open with a single or double quote are joined with
the following elements up to the matching closing quote, so that
"hello world" split by the shell is parsed as one value.

If several registered prefixes match the start of a token, the longest one
is tried first: with prefixes "-" and "--", the token "--foo" is looked up
as "foo" under "--" before it is looked up as "-foo" under "-".

Tokens that do not resolve to a parameter are passed to the default
handler of the registry (see Registry.SetDefault). The default handler
returns the value to record under the raw token, and whether the token is
acceptable. The default handler of a new registry rejects every token.


# Results

Parse returns a ResultSet: the handler values in the order they were
recorded, a validity flag, and the parameter that halted the parse, if any.
A handler halts the parse by returning Halt() (its own result is dropped)
or HaltWith(v) (v is recorded). Tokens after the halting parameter are not
processed; this is the usual way to implement --help or --version.


# Errors

Before scanning, the parser checks that every required parameter (or one
of its aliases) occurs in the input. A missing parameter fails the parse
with code MissingRequiredArgument. A parameter that receives fewer
arguments than its arity demands raises one of the argument count codes.

Without an error handler, the first error aborts the parse and is
returned as a *ParseError. With an error handler (WithErrorHandler), every
error is passed to the handler instead, and scanning continues after an
argument count error; the ResultSet is then marked invalid, and its values
should not be trusted.


# Usage

WriteShortUsage and WriteUsage describe the parameters of a registry; the
latter prints a table of parameters, placeholders, aliases, descriptions,
and required flags.
*/
package paramparse
