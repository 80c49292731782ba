package smartcalc

import "strings"

// normalize collapses each maximal run of + and - into a single operator,
// which is - if and only if the run has an odd number of -. A run of two or
// more * or / in any combination is an error. The result shares no memory
// with toks.
func normalize(toks []lexToken) ([]lexToken, error) {
	r := make([]lexToken, 0, len(toks))
	for i := 0; i < len(toks); {
		tok := toks[i]
		switch {
		case tok.kind.additive():
			neg := false
			j := i
			for ; j < len(toks) && toks[j].kind.additive(); j++ {
				if toks[j].kind == tokenMinus {
					neg = !neg
				}
			}
			if neg {
				r = append(r, lexToken{text: "-", kind: tokenMinus, pos: tok.pos})
			} else {
				r = append(r, lexToken{text: "+", kind: tokenPlus, pos: tok.pos})
			}
			i = j
		case tok.kind.multiplicative():
			j := i + 1
			for j < len(toks) && toks[j].kind.multiplicative() {
				j++
			}
			if j-i > 1 {
				var b strings.Builder
				for _, t := range toks[i:j] {
					b.WriteString(t.text)
				}
				return nil, &OperatorError{Col: toks[i+1].pos, Operator: b.String(), Repeated: true}
			}
			r = append(r, tok)
			i = j
		default:
			r = append(r, tok)
			i++
		}
	}
	return r, nil
}
