package expr

// maxDepth bounds parenthesis nesting.
const maxDepth = 64

type node interface {
	eval(vars map[string]any) Value
}

type literal struct{ v Value }

type identifier struct{ name string }

type unary struct {
	op string
	x  node
}

type binary struct {
	op   string
	l, r node
}

type parser struct {
	toks  []token
	pos   int
	depth int
}

func parse(src string) (node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, errorAt(tok.pos, "unexpected token '%s'", tok.text)
	}
	return root, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// acceptOp consumes the next token when it is one of ops.
func (p *parser) acceptOp(ops ...string) (string, bool) {
	tok := p.peek()
	if tok.kind != tokOperator {
		return "", false
	}
	for _, op := range ops {
		if tok.text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

// binaryLevel parses operand (op operand)* with left associativity.
func (p *parser) binaryLevel(operand func() (node, error), ops ...string) (node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp(ops...)
		if !ok {
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &binary{op: op, l: left, r: right}
	}
}

func (p *parser) parseOr() (node, error) {
	return p.binaryLevel(p.parseAnd, "||")
}

func (p *parser) parseAnd() (node, error) {
	return p.binaryLevel(p.parseEquality, "&&")
}

func (p *parser) parseEquality() (node, error) {
	return p.binaryLevel(p.parseComparison, "==", "===", "!=", "!==")
}

func (p *parser) parseComparison() (node, error) {
	return p.binaryLevel(p.parseAdditive, "<", "<=", ">", ">=")
}

func (p *parser) parseAdditive() (node, error) {
	return p.binaryLevel(p.parseMultiplicative, "+", "-")
}

func (p *parser) parseMultiplicative() (node, error) {
	return p.binaryLevel(p.parseUnary, "*", "/", "%")
}

// parseUnary allows a single prefix operator; "!!x" needs parentheses.
func (p *parser) parseUnary() (node, error) {
	if op, ok := p.acceptOp("!", "-"); ok {
		x, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &unary{op: op, x: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return &literal{v: Number(tok.num)}, nil
	case tokString:
		return &literal{v: String(tok.str)}, nil
	case tokTrue:
		return &literal{v: Bool(true)}, nil
	case tokFalse:
		return &literal{v: Bool(false)}, nil
	case tokNull:
		return &literal{v: Null()}, nil
	case tokUndefined:
		return &literal{v: Undefined()}, nil
	case tokIdent:
		return &identifier{name: tok.text}, nil
	case tokLParen:
		p.depth++
		if p.depth > maxDepth {
			return nil, errorAt(tok.pos, "expression nested deeper than %d levels", maxDepth)
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.kind != tokRParen {
			return nil, errorAt(closing.pos, "expected ')'")
		}
		p.depth--
		return inner, nil
	case tokEOF:
		return nil, errorAt(tok.pos, "unexpected end of expression")
	}
	return nil, errorAt(tok.pos, "unexpected token '%s'", tok.text)
}
