package expr

import (
	"regexp"
	"strings"
)

// The heuristic below is a quick authoring check used by the story
// validator. It is independent of the grammar and may disagree with Parse
// in both directions.

const (
	heurOperand = `(?:-?\d+(?:\.\d+)?|true|false|"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'|[A-Za-z_$][\w$]*)`
	heurIdent   = `[A-Za-z_$][\w$]*`
	heurOp      = `(?:===|!==|==|!=|<=|>=|&&|\|\||<|>|\+|-|\*|/|%)`
	heurNot     = `(?:!\s*)*`
)

var (
	conditionShape = regexp.MustCompile(
		`^\s*` + heurNot + heurIdent + `\s*(?:` + heurOp + `\s*` + heurNot + heurOperand + `\s*)*$`)

	quotedString  = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)
	assignment    = regexp.MustCompile(`(^|[^=!<>])=([^=]|$)`)
	incrementStep = regexp.MustCompile(`\+\+|--`)
	functionCall  = regexp.MustCompile(`[A-Za-z_$][\w$]*\s*\(`)
)

// CheckSyntax is a permissive sanity check for a condition:
// balanced parentheses, then identifier (op operand)* once parentheses are
// removed. It returns nil when the expression looks plausible.
func CheckSyntax(src string) error {
	if strings.TrimSpace(src) == "" {
		return errorAt(0, "expression is empty")
	}
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return errorAt(i, "unbalanced ')'")
			}
		}
	}
	if depth != 0 {
		return errorAt(len(src), "unclosed '('")
	}
	flat := strings.NewReplacer("(", " ", ")", " ").Replace(src)
	if !conditionShape.MatchString(flat) {
		return errorAt(0, "expression does not look like a comparison of variables and literals")
	}
	return nil
}

// Effect names a side effect an expression appears to attempt.
type Effect string

const (
	EffectAssignment Effect = "assignment"
	EffectIncrement  Effect = "increment"
	EffectCall       Effect = "call"
)

// Effects lists the side effects src appears to contain. String literals
// are ignored. The result is empty for pure-looking expressions.
func Effects(src string) []Effect {
	bare := quotedString.ReplaceAllString(src, `""`)
	var out []Effect
	if assignment.MatchString(bare) {
		out = append(out, EffectAssignment)
	}
	if incrementStep.MatchString(bare) {
		out = append(out, EffectIncrement)
	}
	if functionCall.MatchString(bare) {
		out = append(out, EffectCall)
	}
	return out
}
