package jsondelta

import (
	"fmt"
	"sort"
	"strconv"
)

// ApplyDiff applies a single Operation to a, returning the resulting Value.
// ApplyDiff never mutates a: compound results are built from DeepCopy'd
// inputs where required by the nested appliers.
//
// An unrecognized opcode (the zero Operation) is a no-op: ApplyDiff returns
// a unchanged. An opcode applied to a Value of the wrong kind (for example
// "I" against a string) returns ErrTypeMismatch rather than guessing at
// behavior the source spec leaves undefined.
func ApplyDiff(a Value, op Operation) (Value, error) {
	switch op.Op {
	case opNone:
		return a, nil
	case OpInsert, OpReplace:
		return op.V.(Value), nil
	case OpDelete:
		return Null(), nil
	case OpInteger:
		if a.Kind() != KindNumber {
			return a, fmt.Errorf("%w: integer delta against %s", ErrTypeMismatch, TypeOf(a))
		}
		return Number(a.AsNumber() + op.V.(float64)), nil
	case OpObject:
		if a.Kind() != KindObject {
			return a, fmt.Errorf("%w: object diff against %s", ErrTypeMismatch, TypeOf(a))
		}
		obj, err := ApplyObjectDiff(a.AsObject(), op.V.(Delta))
		if err != nil {
			return a, err
		}
		return Object(obj), nil
	case OpList:
		if a.Kind() != KindArray {
			return a, fmt.Errorf("%w: list diff against %s", ErrTypeMismatch, TypeOf(a))
		}
		arr, err := ApplyListDiff(a.AsArray(), op.V.(Delta))
		if err != nil {
			return a, err
		}
		return Array(arr), nil
	case OpListText:
		if a.Kind() != KindArray {
			return a, fmt.Errorf("%w: list text delta against %s", ErrTypeMismatch, TypeOf(a))
		}
		arr, err := ApplyListDiffDMP(a.AsArray(), op.V.(string))
		if err != nil {
			return a, err
		}
		return Array(arr), nil
	case OpText:
		if a.Kind() != KindString {
			return a, fmt.Errorf("%w: text delta against %s", ErrTypeMismatch, TypeOf(a))
		}
		patched, err := applyTextDelta(a.AsString(), op.V.(string))
		if err != nil {
			return a, err
		}
		return String(patched), nil
	default:
		// Closed alphabet: any opcode reaching here is unrecognized.
		return a, nil
	}
}

// applyTextDelta reconstructs a TEXTDIFF diff from (text, delta), builds
// patches from it, and applies them to text. Match-success flags are
// ignored, matching the engine's best-effort text-patch semantics.
func applyTextDelta(text, delta string) (string, error) {
	diffs, err := dmp.DiffFromDelta(text, delta)
	if err != nil {
		return text, err
	}
	patches := dmp.PatchMake(text, diffs)
	patched, _ := dmp.PatchApply(patches, text)
	return patched, nil
}

// ApplyObjectDiff deep-copies s, then for each key in diffs either removes
// the key ("-") or sets it to ApplyDiff(s[key], op). Iteration order over
// diffs is irrelevant: Object keys don't interact with each other.
func ApplyObjectDiff(s map[string]Value, diffs Delta) (map[string]Value, error) {
	out := make(map[string]Value, len(s))
	for k, v := range s {
		out[k] = DeepCopy(v)
	}
	for k, op := range diffs {
		if op.Op == OpDelete {
			delete(out, k)
			continue
		}
		patched, err := ApplyDiff(out[k], op)
		if err != nil {
			return nil, fmt.Errorf("jsondelta: applying diff at key %q: %w", k, err)
		}
		out[k] = patched
	}
	return out, nil
}

// ApplyListDiff applies an index-keyed Delta to a list, correcting for the
// fact that insertions and deletions shift the positions of subsequent
// elements. Delta keys refer to positions in the origin array s; a running
// count of already-applied deletions is used to compute each key's
// effective index into the (already partially edited) working copy.
//
// Keys are sorted numerically, not lexicographically: a lexicographic sort
// of stringified indices ("10" < "2") would misorder deltas past index 9.
func ApplyListDiff(s []Value, diffs Delta) ([]Value, error) {
	out := make([]Value, len(s))
	for i, v := range s {
		out[i] = DeepCopy(v)
	}

	keys := make([]int, 0, len(diffs))
	for k := range diffs {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("jsondelta: list diff key %q is not numeric: %w", k, err)
		}
		keys = append(keys, i)
	}
	sort.Ints(keys)

	var deleted []int
	for _, i := range keys {
		op := diffs[strconv.Itoa(i)]
		shift := 0
		for _, d := range deleted {
			if d <= i {
				shift++
			}
		}
		j := i - shift

		switch op.Op {
		case OpInsert:
			if j < 0 || j > len(out) {
				return nil, fmt.Errorf("jsondelta: list insert index %d out of range", j)
			}
			out = append(out, Value{})
			copy(out[j+1:], out[j:])
			out[j] = op.V.(Value)
		case OpDelete:
			if j < 0 || j >= len(out) {
				return nil, fmt.Errorf("jsondelta: list delete index %d out of range", j)
			}
			out = append(out[:j], out[j+1:]...)
			deleted = append(deleted, i)
		default:
			if j < 0 || j >= len(out) {
				return nil, fmt.Errorf("jsondelta: list index %d out of range", j)
			}
			patched, err := ApplyDiff(out[j], op)
			if err != nil {
				return nil, fmt.Errorf("jsondelta: applying diff at index %d: %w", i, err)
			}
			out[j] = patched
		}
	}
	return out, nil
}

// ApplyListDiffDMP reverses the serialize-to-text step: it applies a
// TEXTDIFF delta string (produced against the newline-joined JSON form of
// s) and re-parses the result back into a list of Values.
func ApplyListDiffDMP(s []Value, delta string) ([]Value, error) {
	text, err := arrayToLines(s)
	if err != nil {
		return nil, err
	}
	patched, err := applyTextDelta(text, delta)
	if err != nil {
		return nil, err
	}
	return linesToArray(patched)
}
