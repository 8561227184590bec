package expr_test

import (
	"testing"

	"github.com/aretw0/fable/pkg/expr"
	"github.com/stretchr/testify/assert"
)

func TestCheckSyntax(t *testing.T) {
	valid := []string{
		"hasKey",
		"!hasKey",
		"coins >= 5 && hasKey",
		"(a || b) && !(c)",
		"name == 'Ada'",
		`title === "The \"One\""`,
		"score + 1 > -2.5",
		"x !== undefined",
	}
	for _, in := range valid {
		assert.NoError(t, expr.CheckSyntax(in), "input %q", in)
	}

	invalid := []string{
		"",
		"(a && b",
		"a && b)",
		"a &&",
		"5 > x",
		"a = 1",
		"obj.prop",
		"a b",
	}
	for _, in := range invalid {
		assert.Error(t, expr.CheckSyntax(in), "input %q", in)
	}
}

func TestCheckSyntax_DecoupledFromGrammar(t *testing.T) {
	// Parses fine, but the heuristic wants a variable first.
	assert.True(t, expr.Validate("5 > x").Valid)
	assert.Error(t, expr.CheckSyntax("5 > x"))

	// Passes the heuristic, but "!!" is not in the grammar.
	assert.NoError(t, expr.CheckSyntax("!!x"))
	assert.False(t, expr.Validate("!!x").Valid)
}

func TestEffects(t *testing.T) {
	tests := []struct {
		in   string
		want []expr.Effect
	}{
		{"a == 1", nil},
		{"a === b && c !== d", nil},
		{"a <= 1 || b >= 2", nil},
		{"a = 1", []expr.Effect{expr.EffectAssignment}},
		{"count++", []expr.Effect{expr.EffectIncrement}},
		{"--lives > 0", []expr.Effect{expr.EffectIncrement}},
		{"rollDice() > 3", []expr.Effect{expr.EffectCall}},
		{"x = roll (6)", []expr.Effect{expr.EffectAssignment, expr.EffectCall}},
		{"label == 'x = f()'", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, expr.Effects(tt.in))
		})
	}
}
