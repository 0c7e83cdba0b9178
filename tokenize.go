package paramparse

import (
	"strings"
)

const (
	singleQuote = '\''
	doubleQuote = '"'
)

// Tokenize takes a complete argument vector, including the program path
// in position 0, and returns the tokens to parse. The program path is
// dropped. Elements opening with a single or double quote are joined,
// separated by one space, with the following elements up to and including
// the one that ends in the same quote; the enclosing quotes are removed.
// A quote that is never closed extends to the end of the input.
func Tokenize(argv []string) []string {
	tokens := []string{}
	if len(argv) < 2 {
		return tokens
	}

	rest := argv[1:]
	for len(rest) > 0 {
		token := rest[0]
		rest = rest[1:]

		quote, ok := openingQuote(token)
		if !ok {
			tokens = append(tokens, token)
			continue
		}

		// A lone quote character is self-closing
		if len(token) == 1 {
			tokens = append(tokens, "")
			continue
		}

		if token[len(token)-1] == quote {
			tokens = append(tokens, token[1:len(token)-1])
			continue
		}

		var joined string
		joined, rest = joinQuoted(token[1:], rest, quote)
		tokens = append(tokens, joined)
	}

	return tokens
}

// openingQuote reports whether the token starts a quoted span, and with
// which quote character.
func openingQuote(token string) (byte, bool) {
	if token == "" {
		return 0, false
	}
	switch token[0] {
	case singleQuote, doubleQuote:
		return token[0], true
	}
	return 0, false
}

// joinQuoted appends elements from rest to head until one ends with the
// closing quote. Returns the joined token and the unconsumed elements.
func joinQuoted(head string, rest []string, quote byte) (string, []string) {
	var b strings.Builder
	b.WriteString(head)

	for len(rest) > 0 {
		part := rest[0]
		rest = rest[1:]

		b.WriteByte(' ')
		if strings.HasSuffix(part, string(quote)) {
			b.WriteString(part[:len(part)-1])
			return b.String(), rest
		}
		b.WriteString(part)
	}

	// Unterminated: keep what was joined so far
	return b.String(), rest
}
