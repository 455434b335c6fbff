package row

import (
	"hash/fnv"
	"io"
	"math"
	"sort"
	"strconv"
)

// FloatTolerance is the absolute tolerance applied when comparing two
// numeric values. Databases and JSON transport round-trip floats through
// text, so exact bit equality is too strict.
const FloatTolerance = 1e-9

// Equal reports deep structural equality between two values of the
// canonical model. Object key order is irrelevant, numeric values compare
// within FloatTolerance, and mismatched non-numeric types are never equal.
func Equal(a, b any) bool {
	if fa, okA := asFloat(a); okA {
		fb, okB := asFloat(b)
		return okB && math.Abs(fa-fb) < FloatTolerance
	}

	switch va := a.(type) {
	case nil:
		return b == nil
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case []any:
		vb, ok := b.([]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !Equal(va[i], vb[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		vb, ok := b.(map[string]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, av := range va {
			bv, present := vb[k]
			if !present || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Hash computes a cheap structural hash over the same canonical form Equal
// compares: object keys sorted, array order preserved, numbers hashed by
// their shortest decimal rendering. Values that are Equal without the
// numeric tolerance hash identically; values equal only within tolerance
// may hash apart, which costs a missed fast path, never a wrong answer.
func Hash(v any) uint64 {
	h := fnv.New64a()
	hashValue(v, h)
	return h.Sum64()
}

func hashValue(v any, w io.Writer) {
	switch val := v.(type) {
	case nil:
		w.Write([]byte{'z'})
	case bool:
		if val {
			w.Write([]byte{'t'})
		} else {
			w.Write([]byte{'f'})
		}
	case string:
		w.Write([]byte{'s'})
		io.WriteString(w, val)
	case []any:
		w.Write([]byte{'a'})
		for _, el := range val {
			hashValue(el, w)
		}
	case map[string]any:
		w.Write([]byte{'o'})
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			io.WriteString(w, k)
			hashValue(val[k], w)
		}
	default:
		if f, ok := asFloat(v); ok {
			w.Write([]byte{'n'})
			io.WriteString(w, strconv.FormatFloat(f, 'g', -1, 64))
			return
		}
		w.Write([]byte{'?'})
	}
}

// asFloat normalises every numeric representation the decoders produce to
// float64. JSON decoding yields float64; database decoding can yield the
// full signed/unsigned integer spread.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}
