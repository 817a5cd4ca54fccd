package cssscale

import "strings"

// DefaultHairlineThreshold is the largest absolute px value treated as a
// hairline when hairline scaling is off.
const DefaultHairlineThreshold = 1.0

// Scaler multiplies px dimensions by a constant factor.
type Scaler struct {
	Factor            float64
	ScaleHairlines    bool
	HairlineThreshold float64
}

// Context locates the tokens being scaled, for the examples list.
type Context struct {
	File     string
	Selector string
	Property string
}

// Scale rewrites every px dimension in tokens, descending into functions and
// blocks. Strings, url tokens and url() functions are never touched, and
// non-zero hairlines are kept unless ScaleHairlines is set.
//
// It returns the new sequence (tokens itself when nothing changed), whether
// anything changed, and how many px values were replaced. Examples are
// recorded on run while it has room.
func (s Scaler) Scale(tokens []Token, ctx Context, run *RunReport) ([]Token, bool, int) {
	var out []Token
	changed := false
	replaced := 0

	for i, t := range tokens {
		nt, ch, n := s.scaleToken(t, ctx, run)
		if ch && out == nil {
			out = make([]Token, i, len(tokens))
			copy(out, tokens[:i])
		}
		if out != nil {
			out = append(out, nt)
		}
		changed = changed || ch
		replaced += n
	}

	if !changed {
		return tokens, false, 0
	}
	return out, true, replaced
}

func (s Scaler) scaleToken(t Token, ctx Context, run *RunReport) (Token, bool, int) {
	switch t.Kind {
	case KindString, KindURL:
		return t, false, 0

	case KindFunction:
		if strings.EqualFold(t.Name, "url") {
			return t, false, 0
		}
		args, ch, n := s.Scale(t.Children, ctx, run)
		if !ch {
			return t, false, 0
		}
		t.Children = args
		return t, true, n

	case KindBlock:
		content, ch, n := s.Scale(t.Children, ctx, run)
		if !ch {
			return t, false, 0
		}
		t.Children = content
		return t, true, n

	case KindDimension:
		if !strings.EqualFold(t.Unit, "px") {
			return t, false, 0
		}
		return s.scalePx(t, ctx, run)

	default:
		return t, false, 0
	}
}

func (s Scaler) scalePx(t Token, ctx Context, run *RunReport) (Token, bool, int) {
	av := t.Value
	if av < 0 {
		av = -av
	}
	if !s.ScaleHairlines && av != 0 && av <= s.HairlineThreshold {
		return t, false, 0
	}

	before := t.Number + t.Unit
	t.Value *= s.Factor
	t.Number = FormatNumber(t.Value)

	run.AddExample(Example{
		File:     ctx.File,
		Selector: ctx.Selector,
		Property: ctx.Property,
		Before:   before,
		After:    t.Number + t.Unit,
	})

	return t, true, 1
}
