package expr

import (
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokTrue
	tokFalse
	tokNull
	tokUndefined
	tokOperator
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
	str  string
	pos  int
}

var keywords = map[string]tokenKind{
	"true":      tokTrue,
	"false":     tokFalse,
	"null":      tokNull,
	"undefined": tokUndefined,
}

// operators is ordered longest first so the scanner is greedy.
var operators = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "&&", "||",
	"<", ">", "+", "-", "*", "/", "%", "!",
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// tokenize splits src into tokens, always ending with a tokEOF.
// There is deliberately no token for '.', '[', ']' or ','.
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case isSpace(c):
			i++

		case isDigit(c):
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i+1 < len(src) && src[i] == '.' && isDigit(src[i+1]) {
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			text := src[start:i]
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, errorAt(start, "invalid number '%s'", text)
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: n, pos: start})

		case c == '"' || c == '\'':
			tok, next, err := scanString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next

		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			text := src[start:i]
			kind := tokIdent
			if kw, ok := keywords[text]; ok {
				kind = kw
			}
			toks = append(toks, token{kind: kind, text: text, pos: start})

		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++

		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++

		default:
			op := matchOperator(src[i:])
			if op == "" {
				return nil, errorAt(i, "unexpected character '%c'", c)
			}
			toks = append(toks, token{kind: tokOperator, text: op, pos: i})
			i += len(op)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func matchOperator(rest string) string {
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			return op
		}
	}
	return ""
}

func scanString(src string, start int) (token, int, error) {
	quote := src[start]
	var sb strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		if c == quote {
			return token{kind: tokString, text: src[start : i+1], str: sb.String(), pos: start}, i + 1, nil
		}
		if c == '\\' {
			if i+1 >= len(src) {
				break
			}
			switch esc := src[i+1]; esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\', '"', '\'':
				sb.WriteByte(esc)
			default:
				return token{}, 0, errorAt(i, "invalid escape sequence '\\%c'", esc)
			}
			i += 2
			continue
		}
		sb.WriteByte(c)
		i++
	}
	return token{}, 0, errorAt(start, "unterminated string")
}
