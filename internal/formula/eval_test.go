package formula_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/itayalasas/hcm-pro-sub001/internal/formula"
)

func vars(pairs map[string]string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(pairs))
	for k, v := range pairs {
		out[k] = decimal.RequireFromString(v)
	}
	return out
}

func TestEvaluate_Arithmetic(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		vars       map[string]string
		want       string
	}{
		{
			name:       "literal",
			expression: "42",
			want:       "42",
		},
		{
			name:       "precedence multiplication before addition",
			expression: "2 + 3 * 4",
			want:       "14",
		},
		{
			name:       "parentheses override precedence",
			expression: "(2 + 3) * 4",
			want:       "20",
		},
		{
			name:       "left associative subtraction",
			expression: "10 - 4 - 3",
			want:       "3",
		},
		{
			name:       "modulo",
			expression: "10 % 3",
			want:       "1",
		},
		{
			name:       "variable substitution",
			expression: "{SALARIO_BASE} * 0.10",
			vars:       map[string]string{"SALARIO_BASE": "1000"},
			want:       "100",
		},
		{
			name:       "running total reference",
			expression: "{TOTAL_PERCEPCIONES} * 0.01",
			vars:       map[string]string{"TOTAL_PERCEPCIONES": "1050"},
			want:       "10.5",
		},
		{
			name:       "mixed variables and literals",
			expression: "({SALARIO_BASE} / {DIAS_TRABAJADOS}) * 2",
			vars:       map[string]string{"SALARIO_BASE": "3000", "DIAS_TRABAJADOS": "30"},
			want:       "200",
		},
		{
			name:       "decimal precision",
			expression: "0.1 + 0.2",
			want:       "0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formula.Evaluate(tt.expression, vars(tt.vars))

			assert.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"want %s, got %s", tt.want, got)
		})
	}
}

func TestEvaluate_Purity(t *testing.T) {
	expr := "({SALARIO_BASE} + 50) * 0.01"
	v := vars(map[string]string{"SALARIO_BASE": "1000"})

	first, err := formula.Evaluate(expr, v)
	assert.NoError(t, err)
	second, err := formula.Evaluate(expr, v)
	assert.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, first.String(), second.String())
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	_, err := formula.Evaluate("{A} / {B}", vars(map[string]string{"A": "10", "B": "0"}))
	assert.ErrorIs(t, err, formula.ErrDivisionByZero)

	_, err = formula.Evaluate("10 % 0", nil)
	assert.ErrorIs(t, err, formula.ErrDivisionByZero)
}

func TestEvaluate_UnknownVariable(t *testing.T) {
	_, err := formula.Evaluate("{NO_EXISTE} + 1", nil)

	var unknownErr *formula.UnknownVariableError
	assert.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "NO_EXISTE", unknownErr.Name)
}

func TestEvaluate_EmptyExpression(t *testing.T) {
	_, err := formula.Evaluate("", nil)
	assert.ErrorIs(t, err, formula.ErrEmptyExpression)

	_, err = formula.Evaluate("   ", nil)
	assert.ErrorIs(t, err, formula.ErrEmptyExpression)
}

func TestEvaluate_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{name: "unbalanced parentheses", expression: "(1 + 2"},
		{name: "trailing operator", expression: "1 +"},
		{name: "leading operator", expression: "* 2"},
		{name: "unterminated variable", expression: "{SALARIO_BASE + 1"},
		{name: "empty variable name", expression: "{} + 1"},
		{name: "adjacent operands", expression: "1 2"},
		{name: "unexpected character", expression: "1 & 2"},
		{name: "invalid number", expression: "1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formula.Evaluate(tt.expression, nil)

			var syntaxErr *formula.SyntaxError
			assert.True(t, errors.As(err, &syntaxErr), "expected syntax error, got %v", err)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, formula.Validate("{SALARIO_BASE} * 0.10 + 5"))
	assert.Error(t, formula.Validate("{SALARIO_BASE} *"))
	assert.ErrorIs(t, formula.Validate(""), formula.ErrEmptyExpression)
}
