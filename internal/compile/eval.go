package compile

import (
	"strings"

	"github.com/samber/lo"

	"github.com/tmc/rew/internal/filter"
)

// RunOnce evaluates the pipeline against in, collapsing any multi-valued
// generator to its first produced value. It implements filter.SubPipeline,
// letting a compiled Pipeline serve as a nested sub-pattern argument for
// another filter.
func (p *Pipeline) RunOnce(rt filter.Runtime, in string) (string, error) {
	outs, err := p.emit(rt, in, true)
	if err != nil {
		return "", err
	}
	if len(outs) == 0 {
		return "", nil
	}
	return outs[0], nil
}

// Emit evaluates the pipeline against line, returning one output per
// combination in the Cartesian product of every multi-valued generator
// expression's outputs, left-to-right outermost-slowest (spec §4.6). Every
// other expression — including single-valued generators like a counter or
// a random value — is evaluated fresh for each emitted combination, so a
// global counter or PRNG draw advances once per emitted output rather than
// once per input line.
func (p *Pipeline) Emit(rt filter.Runtime, line string) ([]string, error) {
	return p.emit(rt, line, false)
}

// multiGen pins one segment to the list of values its generator produced,
// for the Cartesian product across a line.
type multiGen struct {
	segIndex int
	values   []string
}

func (p *Pipeline) emit(rt filter.Runtime, line string, collapse bool) ([]string, error) {
	gens := lo.FilterMap(p.segments, func(seg segment, i int) (multiGen, bool) {
		if seg.isLiteral || !seg.expr.generator {
			return multiGen{}, false
		}
		v, ok := seg.expr.chain[0].(filter.Valuer)
		if !ok {
			return multiGen{}, false
		}
		values := v.Values()
		if collapse && len(values) > 1 {
			values = values[:1]
		}
		return multiGen{segIndex: i, values: values}, true
	})

	total := lo.Reduce(gens, func(acc int, g multiGen, _ int) int { return acc * len(g.values) }, 1)
	if total == 0 {
		return nil, nil
	}

	results := make([]string, 0, total)
	for combo := 0; combo < total; combo++ {
		idxs := comboIndexes(gens, combo)
		out, err := p.renderCombo(rt, line, gens, idxs)
		if err != nil {
			return nil, err
		}
		results = append(results, out)
	}
	return results, nil
}

// comboIndexes decomposes combo into one index per generator in gens,
// treating gens[0] as the most-significant (slowest-varying) digit of a
// mixed-radix number — spec §4.6's "left-to-right outermost-slowest".
func comboIndexes(gens []multiGen, combo int) []int {
	idxs := make([]int, len(gens))
	rem := combo
	for i := len(gens) - 1; i >= 0; i-- {
		n := len(gens[i].values)
		idxs[i] = rem % n
		rem /= n
	}
	return idxs
}

func (p *Pipeline) renderCombo(rt filter.Runtime, line string, gens []multiGen, idxs []int) (string, error) {
	var b strings.Builder
	for segIndex, seg := range p.segments {
		if seg.isLiteral {
			b.WriteString(seg.literal)
			continue
		}
		exprRT := rt.ForExpression(seg.expr.id)

		var seed string
		rest := seg.expr.chain
		if gi := genIndexFor(gens, segIndex); gi >= 0 {
			seed = gens[gi].values[idxs[gi]]
			rest = seg.expr.chain[1:]
		} else if seg.expr.generator {
			s, err := seg.expr.chain[0].Eval(exprRT, line)
			if err != nil {
				return "", err
			}
			seed = s
			rest = seg.expr.chain[1:]
		} else {
			seed = line
		}

		out, err := runChain(exprRT, rest, seed)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func genIndexFor(gens []multiGen, segIndex int) int {
	for i, g := range gens {
		if g.segIndex == segIndex {
			return i
		}
	}
	return -1
}

func runChain(rt filter.Runtime, chain []filter.Filter, in string) (string, error) {
	v := in
	for _, f := range chain {
		out, err := f.Eval(rt, v)
		if err != nil {
			return "", err
		}
		v = out
	}
	return v, nil
}
