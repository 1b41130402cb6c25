package dice

import (
	"math"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

// parser evaluates while it parses:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = "-" unary | primary
//	primary = number | dice | "(" expr ")"
type parser struct {
	tokens     []token
	pos        int
	draw       func(Term) (TermResult, error)
	syntaxOnly bool
}

func (p *parser) parse() (int, error) {
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.pos < len(p.tokens) {
		return 0, errors.InvalidArgumentf("unexpected token at %d", p.tokens[p.pos].pos)
	}
	return v, nil
}

func (p *parser) peekOp(ops ...rune) (rune, bool) {
	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokenOperator {
		return 0, false
	}
	op := p.tokens[p.pos].op
	for _, o := range ops {
		if o == op {
			return op, true
		}
	}
	return 0, false
}

func (p *parser) expr() (int, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp('+', '-')
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left, err = add(left, right)
		} else {
			left, err = sub(left, right)
		}
		if err != nil {
			return 0, err
		}
	}
}

func (p *parser) term() (int, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp('*', '/')
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			if left, err = mul(left, right); err != nil {
				return 0, err
			}
			continue
		}
		if right == 0 {
			if p.syntaxOnly {
				continue
			}
			return 0, errors.InvalidArgument("division by zero")
		}
		// Go integer division truncates toward zero
		left /= right
	}
}

func (p *parser) unary() (int, error) {
	if _, ok := p.peekOp('-'); ok {
		p.pos++
		v, err := p.unary()
		return -v, err
	}
	return p.primary()
}

func (p *parser) primary() (int, error) {
	if p.pos >= len(p.tokens) {
		return 0, errors.InvalidArgument("unexpected end of formula")
	}
	tok := p.tokens[p.pos]
	switch tok.kind {
	case tokenNumber:
		p.pos++
		return tok.value, nil
	case tokenDice:
		p.pos++
		res, err := p.draw(tok.term)
		if err != nil {
			return 0, err
		}
		return res.Total, nil
	case tokenLParen:
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokenRParen {
			return 0, errors.InvalidArgumentf("unclosed parenthesis at %d", tok.pos)
		}
		p.pos++
		return v, nil
	default:
		return 0, errors.InvalidArgumentf("unexpected token at %d", tok.pos)
	}
}

func add(a, b int) (int, error) {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, errors.InvalidArgument("formula result overflows")
	}
	return a + b, nil
}

func sub(a, b int) (int, error) {
	if (b < 0 && a > math.MaxInt+b) || (b > 0 && a < math.MinInt+b) {
		return 0, errors.InvalidArgument("formula result overflows")
	}
	return a - b, nil
}

func mul(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	r := a * b
	if r/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, errors.InvalidArgument("formula result overflows")
	}
	return r, nil
}
