package formula

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Reserved variable names the payroll calculator supplies to every formula.
// TOTAL_PERCEPCIONES and TOTAL_DEDUCCIONES are running totals accumulated so
// far in the employee's concept sequence, which makes evaluation order part
// of the contract.
const (
	VarBaseSalary       = "SALARIO_BASE"
	VarWorkedDays       = "DIAS_TRABAJADOS"
	VarWorkedHours      = "HORAS_TRABAJADAS"
	VarOvertimeHours    = "HORAS_EXTRA"
	VarTotalPerceptions = "TOTAL_PERCEPCIONES"
	VarTotalDeductions  = "TOTAL_DEDUCCIONES"
)

var (
	ErrEmptyExpression = errors.New("empty expression")
	ErrDivisionByZero  = errors.New("division by zero")
)

// SyntaxError marks a malformed expression. Formulas are tenant data, so this
// is a configuration problem, never a server fault.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable {%s}", e.Name)
}

// Evaluate parses and evaluates an arithmetic expression over {NAME}
// variables with operators + - * / % and parentheses. It is pure: identical
// inputs always produce identical decimals.
func Evaluate(expression string, vars map[string]decimal.Decimal) (decimal.Decimal, error) {
	node, err := parse(expression)
	if err != nil {
		return decimal.Zero, err
	}
	return node.eval(vars)
}

// Validate checks the expression syntax without evaluating it. Used when
// formulas are created or updated so malformed expressions are rejected at
// write time instead of surfacing per employee at compute time.
func Validate(expression string) error {
	_, err := parse(expression)
	return err
}

func parse(expression string) (node, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, ErrEmptyExpression
	}

	tokens, err := lex(expression)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		tok := p.peek()
		return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected token %q", tok.text)}
	}
	return root, nil
}

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenVariable
	tokenOperator
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	pos  int
	text string
	num  decimal.Decimal
}

func lex(expression string) ([]token, error) {
	runes := []rune(expression)
	tokens := make([]token, 0, len(runes)/2)

	i := 0
	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '{':
			start := i
			i++
			nameStart := i
			for i < len(runes) && runes[i] != '}' {
				i++
			}
			if i >= len(runes) {
				return nil, &SyntaxError{Pos: start, Msg: "unterminated variable reference"}
			}
			name := strings.TrimSpace(string(runes[nameStart:i]))
			i++ // consume '}'
			if name == "" {
				return nil, &SyntaxError{Pos: start, Msg: "empty variable name"}
			}
			tokens = append(tokens, token{kind: tokenVariable, pos: start, text: name})

		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			literal := string(runes[start:i])
			num, err := decimal.NewFromString(literal)
			if err != nil {
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid number %q", literal)}
			}
			tokens = append(tokens, token{kind: tokenNumber, pos: start, text: literal, num: num})

		case r == '+' || r == '-' || r == '*' || r == '/' || r == '%':
			tokens = append(tokens, token{kind: tokenOperator, pos: i, text: string(r)})
			i++

		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, pos: i, text: "("})
			i++

		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, pos: i, text: ")"})
			i++

		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", string(r))}
		}
	}

	return tokens, nil
}

type node interface {
	eval(vars map[string]decimal.Decimal) (decimal.Decimal, error)
}

type numberNode struct {
	value decimal.Decimal
}

func (n numberNode) eval(map[string]decimal.Decimal) (decimal.Decimal, error) {
	return n.value, nil
}

type variableNode struct {
	name string
}

func (n variableNode) eval(vars map[string]decimal.Decimal) (decimal.Decimal, error) {
	value, ok := vars[n.name]
	if !ok {
		return decimal.Zero, &UnknownVariableError{Name: n.name}
	}
	return value, nil
}

type binaryNode struct {
	op          string
	left, right node
}

func (n binaryNode) eval(vars map[string]decimal.Decimal) (decimal.Decimal, error) {
	left, err := n.left.eval(vars)
	if err != nil {
		return decimal.Zero, err
	}
	right, err := n.right.eval(vars)
	if err != nil {
		return decimal.Zero, err
	}

	switch n.op {
	case "+":
		return left.Add(right), nil
	case "-":
		return left.Sub(right), nil
	case "*":
		return left.Mul(right), nil
	case "/":
		if right.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		return left.Div(right), nil
	case "%":
		if right.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		return left.Mod(right), nil
	}

	return decimal.Zero, fmt.Errorf("unsupported operator %q", n.op)
}

// parser is a recursive-descent parser with the conventional two precedence
// levels: * / % bind tighter than + -.
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) parseExpression() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.matchOperator("+", "-") {
		op := p.previous()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op.text, left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.matchOperator("*", "/", "%") {
		op := p.previous()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op.text, left: left, right: right}
	}

	return left, nil
}

func (p *parser) parsePrimary() (node, error) {
	if p.atEnd() {
		return nil, &SyntaxError{Pos: p.lastPos(), Msg: "missing operand"}
	}

	tok := p.peek()
	switch tok.kind {
	case tokenNumber:
		p.pos++
		return numberNode{value: tok.num}, nil

	case tokenVariable:
		p.pos++
		return variableNode{name: tok.text}, nil

	case tokenLParen:
		p.pos++
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || p.peek().kind != tokenRParen {
			return nil, &SyntaxError{Pos: tok.pos, Msg: "unbalanced parentheses"}
		}
		p.pos++
		return inner, nil
	}

	return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected token %q", tok.text)}
}

func (p *parser) matchOperator(ops ...string) bool {
	if p.atEnd() || p.peek().kind != tokenOperator {
		return false
	}
	for _, op := range ops {
		if p.peek().text == op {
			p.pos++
			return true
		}
	}
	return false
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) previous() token {
	return p.tokens[p.pos-1]
}

func (p *parser) lastPos() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].pos
}
