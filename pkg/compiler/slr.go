package compiler

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// item is an LR(0) item: a grammar rule with a dot position in its right
// side.
type item struct {
	rule int
	dot  int
}

type actionKind int

const (
	actionNone actionKind = iota
	actionShift
	actionReduce
	actionAccept
)

type action struct {
	kind   actionKind
	target int // shift: destination state; reduce: rule index
}

// parseTable is the finished SLR(1) automaton: one action row per state
// indexed by terminal, one goto row per state indexed by nonterminal.
type parseTable struct {
	actions [][]action
	gotos   [][]int
}

var (
	buildOnce   sync.Once
	parseTables *parseTable
)

// slrTable returns the parse table, building it from the grammar on first
// use. Construction is deterministic, so every call sees the same state
// numbering.
func slrTable() *parseTable {
	buildOnce.Do(func() {
		parseTables = newParseTable()
	})
	return parseTables
}

type symbolSet map[symbol]bool

func computeNullable() map[symbol]bool {
	nullable := make(map[symbol]bool)
	for changed := true; changed; {
		changed = false
		for _, r := range grammar {
			if nullable[r.lhs] {
				continue
			}
			all := true
			for _, s := range r.rhs {
				if !nullable[s] {
					all = false
					break
				}
			}
			if all {
				nullable[r.lhs] = true
				changed = true
			}
		}
	}
	return nullable
}

func computeFirst(nullable map[symbol]bool) map[symbol]symbolSet {
	first := make(map[symbol]symbolSet)
	for s := symbol(0); s < symbolCount; s++ {
		first[s] = symbolSet{}
		if s.terminal() {
			first[s][s] = true
		}
	}
	for changed := true; changed; {
		changed = false
		for _, r := range grammar {
			for _, s := range r.rhs {
				for t := range first[s] {
					if !first[r.lhs][t] {
						first[r.lhs][t] = true
						changed = true
					}
				}
				if !nullable[s] {
					break
				}
			}
		}
	}
	return first
}

// firstOf collects FIRST over a symbol sequence; the bool reports whether
// the whole sequence can derive empty.
func firstOf(seq []symbol, first map[symbol]symbolSet, nullable map[symbol]bool) (symbolSet, bool) {
	out := symbolSet{}
	for _, s := range seq {
		for t := range first[s] {
			out[t] = true
		}
		if !nullable[s] {
			return out, false
		}
	}
	return out, true
}

func computeFollow(first map[symbol]symbolSet, nullable map[symbol]bool) map[symbol]symbolSet {
	follow := make(map[symbol]symbolSet)
	for s := ntStart; s < symbolCount; s++ {
		follow[s] = symbolSet{}
	}
	follow[ntStart][tEOF] = true
	for changed := true; changed; {
		changed = false
		add := func(to, t symbol) {
			if !follow[to][t] {
				follow[to][t] = true
				changed = true
			}
		}
		for _, r := range grammar {
			for i, s := range r.rhs {
				if s.terminal() {
					continue
				}
				rest, restNullable := firstOf(r.rhs[i+1:], first, nullable)
				for t := range rest {
					add(s, t)
				}
				if restNullable {
					for t := range follow[r.lhs] {
						add(s, t)
					}
				}
			}
		}
	}
	return follow
}

// closure expands an item set with one item at dot zero for every rule of
// each nonterminal that appears right after a dot. The result is sorted so
// equal sets encode identically.
func closure(items []item) []item {
	set := make(map[item]bool, len(items))
	var work []item
	for _, it := range items {
		if !set[it] {
			set[it] = true
			work = append(work, it)
		}
	}
	for i := 0; i < len(work); i++ {
		it := work[i]
		rhs := grammar[it.rule].rhs
		if it.dot >= len(rhs) {
			continue
		}
		next := rhs[it.dot]
		if next.terminal() {
			continue
		}
		for ri := range grammar {
			if grammar[ri].lhs != next {
				continue
			}
			cand := item{rule: ri}
			if !set[cand] {
				set[cand] = true
				work = append(work, cand)
			}
		}
	}
	sort.Slice(work, func(a, b int) bool {
		if work[a].rule != work[b].rule {
			return work[a].rule < work[b].rule
		}
		return work[a].dot < work[b].dot
	})
	return work
}

// advance moves the dot over one symbol, keeping just the items that had
// it in front of the dot.
func advance(items []item, on symbol) []item {
	var out []item
	for _, it := range items {
		rhs := grammar[it.rule].rhs
		if it.dot < len(rhs) && rhs[it.dot] == on {
			out = append(out, item{rule: it.rule, dot: it.dot + 1})
		}
	}
	return out
}

func encodeItems(items []item) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%d.%d;", it.rule, it.dot)
	}
	return b.String()
}

// newParseTable runs the textbook SLR(1) construction: build the LR(0)
// canonical collection, shift along every transition, and place each
// completed item's reduce action on the FOLLOW set of its left side.
func newParseTable() *parseTable {
	nullable := computeNullable()
	first := computeFirst(nullable)
	follow := computeFollow(first, nullable)

	start := closure([]item{{rule: 0}})
	states := [][]item{start}
	index := map[string]int{encodeItems(start): 0}

	type transition struct {
		from int
		on   symbol
		to   int
	}
	var transitions []transition

	for i := 0; i < len(states); i++ {
		seen := make(map[symbol]bool)
		var outgoing []symbol
		for _, it := range states[i] {
			rhs := grammar[it.rule].rhs
			if it.dot < len(rhs) && !seen[rhs[it.dot]] {
				seen[rhs[it.dot]] = true
				outgoing = append(outgoing, rhs[it.dot])
			}
		}
		sort.Slice(outgoing, func(a, b int) bool { return outgoing[a] < outgoing[b] })
		for _, s := range outgoing {
			next := closure(advance(states[i], s))
			key := encodeItems(next)
			j, ok := index[key]
			if !ok {
				j = len(states)
				index[key] = j
				states = append(states, next)
			}
			transitions = append(transitions, transition{from: i, on: s, to: j})
		}
	}

	t := &parseTable{
		actions: make([][]action, len(states)),
		gotos:   make([][]int, len(states)),
	}
	for i := range states {
		t.actions[i] = make([]action, symbolCount)
		t.gotos[i] = make([]int, symbolCount)
		for s := range t.gotos[i] {
			t.gotos[i][s] = -1
		}
	}
	for _, tr := range transitions {
		if tr.on.terminal() {
			t.setAction(tr.from, tr.on, action{kind: actionShift, target: tr.to})
		} else {
			t.gotos[tr.from][tr.on] = tr.to
		}
	}
	for i, state := range states {
		for _, it := range state {
			r := grammar[it.rule]
			if it.dot < len(r.rhs) {
				continue
			}
			if it.rule == 0 {
				t.setAction(i, tEOF, action{kind: actionAccept})
				continue
			}
			for term := range follow[r.lhs] {
				t.setAction(i, term, action{kind: actionReduce, target: it.rule})
			}
		}
	}
	return t
}

// setAction writes one action cell. A shift/reduce collision keeps the
// shift, which resolves the dangling else toward the nearest if; any other
// collision means the grammar is not SLR(1) and construction panics.
func (t *parseTable) setAction(state int, s symbol, act action) {
	cur := t.actions[state][s]
	switch {
	case cur.kind == actionNone:
		t.actions[state][s] = act
	case cur == act:
	case cur.kind == actionShift && act.kind == actionReduce:
	case cur.kind == actionReduce && act.kind == actionShift:
		t.actions[state][s] = act
	default:
		panic(fmt.Sprintf("grammar conflict in state %d on %s", state, s))
	}
}
