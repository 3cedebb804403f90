package compiler

import "errors"

// slrParser drives the table automaton over a token stream. Unlike the
// recursive-descent parser it does not resynchronize: the first table
// error abandons the parse with no tree.
type slrParser struct {
	tokens []Token
	pos    int

	hadError bool
	errMsg   string
}

// frame pairs an automaton state with the value carried at that stack
// depth. The classic formulation keeps two stacks popped in lock-step; one
// slice of frames keeps them the same length by construction.
type frame struct {
	state int
	val   value
}

// ParseSLR parses tokens with the table-driven engine and builds the same
// trees as Parse for input both grammars accept. On a syntax error the
// returned tree is nil. An assignment target or call callee that is not a
// name keeps the tree and reports through err, matching the
// recursive-descent recovery policy.
func ParseSLR(tokens []Token) (*Node, error) {
	p := &slrParser{tokens: tokens}
	tree := p.run()
	if p.hadError {
		return tree, errors.New(p.errMsg)
	}
	return tree, nil
}

func (p *slrParser) error(message string) {
	p.hadError = true
	p.errMsg = message
}

func (p *slrParser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

func (p *slrParser) run() *Node {
	t := slrTable()
	stack := []frame{{state: 0}}
	for {
		tok := p.peek()
		sym := tokenToSymbol(tok)
		if sym == symError {
			p.error("Syntax error")
			return nil
		}
		act := t.actions[stack[len(stack)-1].state][sym]
		switch act.kind {
		case actionShift:
			stack = append(stack, frame{state: act.target, val: value{tok: tok}})
			p.pos++

		case actionReduce:
			r := grammar[act.target]
			base := len(stack) - len(r.rhs)
			popped := make([]value, len(r.rhs))
			for i := range popped {
				popped[i] = stack[base+i].val
			}
			result := r.action(p, popped)
			stack = stack[:base]
			next := t.gotos[stack[len(stack)-1].state][r.lhs]
			if next < 0 {
				p.error("Invalid state transition")
				return nil
			}
			stack = append(stack, frame{state: next, val: result})

		case actionAccept:
			return stack[len(stack)-1].val.node

		default:
			p.error("Syntax error")
			return nil
		}
	}
}
