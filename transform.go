package jsondelta

import (
	"sort"
	"strconv"
)

// TransformObjectDiff rewrites da so that it may be applied after db on the
// same base document s and still express da's original intent (operational
// transform). s is the common ancestor both deltas were computed against.
//
// Keys present only in da pass through unchanged. Keys present in both da
// and db are resolved per the pairwise opcode table in the design notes;
// any combination not named there is left as da's original operation,
// since no known conflict requires rewriting it (for example two scalar
// replaces: da's replace still expresses da's full intent once applied
// after db's).
func TransformObjectDiff(da, db Delta, s map[string]Value, policy *Policy) Delta {
	out := make(Delta, len(da))
	for k, op := range da {
		out[k] = op
	}

	for key, aOp := range da {
		bOp, ok := db[key]
		if !ok {
			continue
		}
		sVal := s[key]
		sub := policy.Attr(key)

		switch {
		case aOp.Op == OpInsert && bOp.Op == OpInsert:
			aVal, bVal := aOp.V.(Value), bOp.V.(Value)
			if Equals(aVal, bVal) {
				delete(out, key)
				continue
			}
			newOp := diffOp(bVal, aVal, sub)
			if newOp.IsZero() {
				delete(out, key)
			} else {
				out[key] = newOp
			}

		case aOp.Op == OpDelete && bOp.Op == OpDelete:
			delete(out, key)

		case bOp.Op == OpDelete && isReinstatable(aOp.Op):
			final, err := ApplyDiff(sVal, aOp)
			if err != nil {
				// A's op couldn't be replayed against the base value; fall
				// back to leaving da's operation untouched rather than
				// dropping A's intent silently.
				continue
			}
			out[key] = Operation{Op: OpInsert, V: final}

		case aOp.Op == OpObject && bOp.Op == OpObject:
			child := TransformObjectDiff(aOp.V.(Delta), bOp.V.(Delta), sVal.AsObject(), sub)
			out[key] = Operation{Op: OpObject, V: child}

		case aOp.Op == OpList && bOp.Op == OpList:
			child := TransformListDiff(aOp.V.(Delta), bOp.V.(Delta), sVal, sub)
			out[key] = Operation{Op: OpList, V: child}

		case aOp.Op == OpListText && bOp.Op == OpListText:
			child := TransformListDiffDMP(aOp.V.(string), bOp.V.(string), sVal)
			if child == "" {
				delete(out, key)
			} else {
				out[key] = Operation{Op: OpListText, V: child}
			}

		case aOp.Op == OpText && bOp.Op == OpText:
			bVal, err := ApplyDiff(sVal, bOp)
			if err != nil {
				continue
			}
			abVal, err := ApplyDiff(bVal, aOp)
			if err != nil {
				continue
			}
			bText, abText := bVal.AsString(), abVal.AsString()
			if abText == bText {
				delete(out, key)
				continue
			}
			diffs := dmp.DiffMain(bText, abText, false)
			diffs = dmp.DiffCleanupEfficiency(diffs)
			out[key] = Operation{Op: OpText, V: dmp.DiffToDelta(diffs)}

		default:
			// leave out[key] as da's original operation
		}
	}
	return out
}

// isReinstatable reports whether an A-side opcode represents an edit of a
// key's value (as opposed to a delete) whose intent should be reinstated as
// an insert when B concurrently deleted that key: A meant to leave the key
// with some final value, and B's delete must not silently win. OpReplace is
// included alongside OpObject/OpList/OpInteger/OpText: a whole-value
// replace is still an edit of the key B deleted, and reinstating it is what
// lets A's intent survive (S6 in the design notes: a "r" op against a key B
// deletes must still come back as a "+" of A's final value).
//
// OpInsert is deliberately excluded: both Da and Db are diffed against the
// same base S, so Bop=='-' implies the key was present in S, which in turn
// means Aop (diffed from that same S) can never be '+' for that key — a
// well-formed Da never reaches this branch with aOp.Op==OpInsert.
func isReinstatable(op Opcode) bool {
	switch op {
	case OpObject, OpList, OpInteger, OpText, OpReplace:
		return true
	default:
		return false
	}
}

// TransformListDiff rewrites da's index-keyed operations so that they refer
// to correct positions after db has already been applied to the same base
// list s, and resolves any position where both deltas act on the same
// (post-shift) index via TransformObjectDiff's pairwise table.
//
// The shortcut of reusing the previous index's shift for
// consecutive keys is not applied: shift_r/shift_l are recomputed for every
// key, since an intervening Db index between two Da keys can invalidate a
// cached shift (see design notes).
func TransformListDiff(da, db Delta, s Value, policy *Policy) Delta {
	bInserts, bDeletes := splitListIndices(db)
	arr := s.AsArray()

	out := Delta{}
	for _, i := range sortedListIndices(da) {
		aOp := da[strconv.Itoa(i)]
		shift := countLess(bInserts, i) - countLess(bDeletes, i)
		iPrime := i + shift
		key := strconv.Itoa(iPrime)

		bOp, ok := db[key]
		if !ok {
			out[key] = aOp
			continue
		}

		elem := Null()
		if iPrime >= 0 && iPrime < len(arr) {
			elem = arr[iPrime]
		}
		child := TransformObjectDiff(
			Delta{key: aOp}, Delta{key: bOp},
			map[string]Value{key: elem},
			wrapAttr(policy.ElemPolicy(), key),
		)
		if resolved, ok := child[key]; ok {
			out[key] = resolved
		}
	}
	return out
}

// TransformListDiffDMP rebases a text-mode list delta da against db, both
// computed over the newline-serialized form of s. It returns the empty
// string when da's edits are entirely subsumed by db's.
func TransformListDiffDMP(da, db string, s Value) string {
	sText, err := arrayToLines(s.AsArray())
	if err != nil {
		return ""
	}
	bText, err := applyTextDelta(sText, db)
	if err != nil {
		return ""
	}
	abText, err := applyTextDelta(bText, da)
	if err != nil {
		return ""
	}
	if abText == bText {
		return ""
	}
	diffs := dmp.DiffMain(bText, abText, false)
	diffs = dmp.DiffCleanupEfficiency(diffs)
	return dmp.DiffToDelta(diffs)
}

func splitListIndices(d Delta) (inserts, deletes []int) {
	for k, op := range d {
		i, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		switch op.Op {
		case OpInsert:
			inserts = append(inserts, i)
		case OpDelete:
			deletes = append(deletes, i)
		}
	}
	sort.Ints(inserts)
	sort.Ints(deletes)
	return inserts, deletes
}

func sortedListIndices(d Delta) []int {
	keys := make([]int, 0, len(d))
	for k := range d {
		if i, err := strconv.Atoi(k); err == nil {
			keys = append(keys, i)
		}
	}
	sort.Ints(keys)
	return keys
}

func countLess(sorted []int, v int) int {
	return sort.SearchInts(sorted, v)
}

func wrapAttr(p *Policy, key string) *Policy {
	return &Policy{Attributes: map[string]*Policy{key: p}}
}
