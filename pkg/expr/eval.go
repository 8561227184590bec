package expr

import "math"

func (n *literal) eval(map[string]any) Value { return n.v }

func (n *identifier) eval(vars map[string]any) Value {
	v, ok := vars[n.name]
	if !ok {
		return Undefined()
	}
	return FromAny(v)
}

func (n *unary) eval(vars map[string]any) Value {
	x := n.x.eval(vars)
	if n.op == "!" {
		return Bool(!x.Truthy())
	}
	return Number(-x.Number())
}

func (n *binary) eval(vars map[string]any) Value {
	l := n.l.eval(vars)

	// && and || short-circuit and yield the deciding operand.
	switch n.op {
	case "&&":
		if !l.Truthy() {
			return l
		}
		return n.r.eval(vars)
	case "||":
		if l.Truthy() {
			return l
		}
		return n.r.eval(vars)
	}

	r := n.r.eval(vars)
	switch n.op {
	case "==":
		return Bool(LooseEquals(l, r))
	case "!=":
		return Bool(!LooseEquals(l, r))
	case "===":
		return Bool(StrictEquals(l, r))
	case "!==":
		return Bool(!StrictEquals(l, r))
	case "<":
		return Bool(l.Number() < r.Number())
	case "<=":
		return Bool(l.Number() <= r.Number())
	case ">":
		return Bool(l.Number() > r.Number())
	case ">=":
		return Bool(l.Number() >= r.Number())
	case "+":
		if l.kind == KindString || r.kind == KindString {
			return String(l.String() + r.String())
		}
		return Number(l.Number() + r.Number())
	case "-":
		return Number(l.Number() - r.Number())
	case "*":
		return Number(l.Number() * r.Number())
	case "/":
		d := r.Number()
		if d == 0 {
			return Number(math.NaN())
		}
		return Number(l.Number() / d)
	case "%":
		d := r.Number()
		if d == 0 {
			return Number(math.NaN())
		}
		return Number(math.Mod(l.Number(), d))
	}
	return Undefined()
}
