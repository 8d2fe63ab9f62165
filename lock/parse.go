package lock

import (
	"fmt"
	"strconv"
	"strings"

	"mush/match"
	"mush/types"
)

const escChar = '\033'

// parser carries one parse through the grammar. The cursor walks the
// input without mutating it; object tokens are sliced out and trimmed.
type parser struct {
	ev       *Evaluator
	input    string
	pos      int
	player   types.ObjID
	internal bool
}

// Parse compiles a lock string into an expression tree.
//
// An empty string parses to Unlocked. When internal is false the string
// came from a player: control characters and unbalanced parentheses are
// rejected up front, and object references go through the full matcher
// with a notification when they fail. When internal is true the string
// is a stored lock whose references are bare dbrefs.
//
// Parse never fails: any structural violation folds the whole result to
// the Unlocked sentinel.
func (ev *Evaluator) Parse(player types.ObjID, text string, internal bool) Node {
	if !internal {
		depth := 0
		for _, c := range text {
			switch c {
			case '\t', '\r', '\n', escChar:
				ev.notify(player, "I don't understand that key.")
				return Unlocked
			case '(':
				depth++
			case ')':
				if depth == 0 {
					ev.notify(player, "I don't understand that key.")
					return Unlocked
				}
				depth--
			}
		}
		if depth != 0 {
			ev.notify(player, "I don't understand that key.")
			return Unlocked
		}
	}

	if text == "" {
		return Unlocked
	}

	p := &parser{ev: ev, input: text, player: player, internal: internal}
	return p.parseE()
}

// parseE handles E -> T; E -> T | E
func (p *parser) parseE() Node {
	b := p.parseT()
	if b == Unlocked {
		return Unlocked
	}
	p.skipSpace()
	if p.peek() == orToken {
		p.pos++
		right := p.parseE()
		if right == Unlocked {
			return Unlocked
		}
		return &OrNode{Left: b, Right: right}
	}
	return b
}

// parseT handles T -> F; T -> F & T
func (p *parser) parseT() Node {
	b := p.parseF()
	if b == Unlocked {
		return Unlocked
	}
	p.skipSpace()
	if p.peek() == andToken {
		p.pos++
		right := p.parseT()
		if right == Unlocked {
			return Unlocked
		}
		return &AndNode{Left: b, Right: right}
	}
	return b
}

// parseF handles F -> !F; F -> @L; F -> =L; F -> +L; F -> $L; F -> L
func (p *parser) parseF() Node {
	p.skipSpace()
	switch p.peek() {
	case notToken:
		p.pos++
		sub := p.parseF()
		if sub == Unlocked {
			return Unlocked
		}
		return &NotNode{Sub: sub}

	case indirToken:
		p.pos++
		sub := p.parseL()
		if !isConst(sub) {
			return Unlocked
		}
		return &IndirNode{Sub: sub}

	case isToken:
		p.pos++
		sub := p.parseL()
		if !isConstOrAtr(sub) {
			return Unlocked
		}
		return &IsNode{Sub: sub}

	case carryToken:
		p.pos++
		sub := p.parseL()
		if !isConstOrAtr(sub) {
			return Unlocked
		}
		return &CarryNode{Sub: sub}

	case ownerToken:
		p.pos++
		sub := p.parseL()
		if !isConst(sub) {
			return Unlocked
		}
		return &OwnerNode{Sub: sub}

	default:
		return p.parseL()
	}
}

// parseL handles L -> (E); L -> object reference
func (p *parser) parseL() Node {
	p.skipSpace()
	if p.peek() == '(' {
		p.pos++
		b := p.parseE()
		p.skipSpace()
		if b == Unlocked || p.peek() != ')' {
			return Unlocked
		}
		p.pos++
		return b
	}

	// Object reference: everything up to the next operator
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == andToken || c == orToken || c == ')' {
			break
		}
		p.pos++
	}
	token := strings.TrimSpace(p.input[start:p.pos])

	// Attribute lock shorthand first
	if b := p.testAtr(token); b != nil {
		return b
	}

	if p.internal {
		// Stored locks hold bare dbrefs; skip the matcher
		if !strings.HasPrefix(token, "#") {
			return Unlocked
		}
		num, err := strconv.Atoi(token[1:])
		if err != nil || num < 0 {
			return Unlocked
		}
		return &ConstNode{Thing: types.ObjID(num)}
	}

	thing := match.MatchThing(p.ev.Store, p.player, token)
	if thing == types.Nothing {
		p.ev.notify(p.player, fmt.Sprintf("I don't see %s here.", token))
		return Unlocked
	}
	if thing == types.Ambiguous {
		p.ev.notify(p.player, fmt.Sprintf("I don't know which %s you mean!", token))
		return Unlocked
	}
	return &ConstNode{Thing: thing}
}

// testAtr recognizes the name:pattern and name/pattern attribute-lock
// shorthands. nil means the token is not an attribute lock and should
// be resolved as an object reference instead.
func (p *parser) testAtr(token string) Node {
	sep := strings.IndexAny(token, ":/")
	if sep < 0 {
		return nil
	}
	name := token[:sep]
	pattern := token[sep+1:]

	var num int
	if def := p.ev.Store.Defs.ByName(name); def != nil {
		num = def.Number
	} else {
		// Numeric references let God import locks that store
		// attribute numbers instead of names. Nobody else.
		if p.player != types.God {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(name))
		if err != nil || n <= 0 {
			return nil
		}
		num = n
	}

	if token[sep] == '/' {
		return &EvalNode{Attr: num, Pattern: pattern}
	}
	return &AtrNode{Attr: num, Pattern: pattern}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// peek returns the current byte, 0 at end of input
func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func isConst(b Node) bool {
	_, ok := b.(*ConstNode)
	return ok
}

func isConstOrAtr(b Node) bool {
	switch b.(type) {
	case *ConstNode, *AtrNode:
		return true
	}
	return false
}

// ParseStored is the convenience form for locks fetched from storage
func (ev *Evaluator) ParseStored(text string) Node {
	return ev.Parse(types.Nothing, text, true)
}
