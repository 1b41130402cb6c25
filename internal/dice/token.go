package dice

import (
	"strconv"
	"unicode"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

const (
	maxDiceCount = 1000
	maxDiceFaces = 1000
	maxLiteral   = 1_000_000
)

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenDice
	tokenOperator
	tokenLParen
	tokenRParen
)

type token struct {
	kind  tokenKind
	value int
	term  Term
	op    rune
	pos   int
}

type lexer struct {
	src []rune
	pos int
}

func tokenize(formula string) ([]token, error) {
	l := &lexer{src: []rune(formula)}
	var tokens []token

	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case unicode.IsSpace(r):
			l.pos++
		case r == '+' || r == '-' || r == '*' || r == '/':
			tokens = append(tokens, token{kind: tokenOperator, op: r, pos: l.pos})
			l.pos++
		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, pos: l.pos})
			l.pos++
		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, pos: l.pos})
			l.pos++
		case unicode.IsDigit(r) || r == 'd' || r == 'D':
			tok, err := l.numberOrDice()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		default:
			return nil, errors.InvalidArgumentf("unexpected character %q at %d", r, l.pos)
		}
	}

	if len(tokens) == 0 {
		return nil, errors.InvalidArgument("empty formula")
	}
	return tokens, nil
}

func (l *lexer) numberOrDice() (token, error) {
	start := l.pos
	count, hasCount := l.digits()

	if l.pos >= len(l.src) || (l.src[l.pos] != 'd' && l.src[l.pos] != 'D') {
		if count > maxLiteral {
			return token{}, errors.InvalidArgumentf("literal at %d is too large", start)
		}
		return token{kind: tokenNumber, value: count, pos: start}, nil
	}

	l.pos++ // d
	if !hasCount {
		count = 1
	}
	faces, ok := l.digits()
	if !ok {
		return token{}, errors.InvalidArgumentf("dice term at %d is missing its faces", start)
	}
	if count < 1 || count > maxDiceCount {
		return token{}, errors.InvalidArgumentf("dice count at %d must be between 1 and %d", start, maxDiceCount)
	}
	if faces < 1 || faces > maxDiceFaces {
		return token{}, errors.InvalidArgumentf("dice faces at %d must be between 1 and %d", start, maxDiceFaces)
	}

	term := Term{Count: count, Faces: faces}
	if l.pos < len(l.src) && (l.src[l.pos] == 'k' || l.src[l.pos] == 'K') {
		l.pos++
		if l.pos >= len(l.src) {
			return token{}, errors.InvalidArgumentf("keep modifier at %d is incomplete", start)
		}
		switch unicode.ToLower(l.src[l.pos]) {
		case 'h':
			term.Keep = KeepHighest
		case 'l':
			term.Keep = KeepLowest
		default:
			return token{}, errors.InvalidArgumentf("unknown keep modifier at %d", l.pos)
		}
		l.pos++
		keep, ok := l.digits()
		if !ok {
			keep = 1
		}
		if keep < 1 {
			return token{}, errors.InvalidArgumentf("keep count at %d must be positive", start)
		}
		term.KeepCount = min(keep, count)
	}

	return token{kind: tokenDice, term: term, pos: start}, nil
}

// digits consumes a run of decimal digits
func (l *lexer) digits() (int, bool) {
	start := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
		l.pos++
	}
	if start == l.pos {
		return 0, false
	}
	n, err := strconv.Atoi(string(l.src[start:l.pos]))
	if err != nil {
		return maxLiteral + 1, true
	}
	return n, true
}
