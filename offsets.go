package jsondelta

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// PatchApplyWithOffsets applies patches to text, remapping offsets (caret
// or selection positions, assumed sorted ascending) through the edit in
// place, and returns the patched text.
//
// The heavy lifting of fuzzy patch application — locating the expected
// position, splitting oversized patches, padding both ends of the text,
// and falling back when a patch's content no longer matches closely enough
// — is TEXTDIFF's own job: diffmatchpatch.Patch's start/length bookkeeping
// is private to that package, so rather than reaching into it this
// specializes the *public* PatchApply (which already performs all of the
// above internally) by diffing its before/after text to learn exactly
// which spans were inserted or deleted, then replaying that span-level
// diff over the offsets. A patch PatchApply silently drops (fuzzy-match
// failure, or content mismatch past the delete threshold) leaves its
// region of text untouched, which this before/after diff naturally
// reflects as an absence of change — no separate bookkeeping is needed for
// the drop case.
func PatchApplyWithOffsets(patches []diffmatchpatch.Patch, text string, offsets []int) (string, error) {
	if len(patches) == 0 {
		return text, nil
	}

	dmpPatches := dmp.PatchDeepCopy(patches)
	patched, _ := dmp.PatchApply(dmpPatches, text)
	if patched == text {
		return patched, nil
	}

	diffs := dmp.DiffMain(text, patched, false)
	applyOffsetDiff(diffs, offsets)
	return patched, nil
}

// applyOffsetDiff walks a char-level diff between an old and new text and
// remaps offsets (given in the old text's coordinate space, sorted
// ascending) to their positions in the new text, in place.
func applyOffsetDiff(diffs []diffmatchpatch.Diff, offsets []int) {
	origPos := make([]int, len(offsets))
	copy(origPos, offsets)

	oldPos := 0
	shift := 0
	oi := 0

	resolveUpTo := func(bound int, inclusive bool) {
		for oi < len(offsets) {
			op := origPos[oi]
			if inclusive && op > bound {
				break
			}
			if !inclusive && op >= bound {
				break
			}
			offsets[oi] = op + shift
			oi++
		}
	}

	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			resolveUpTo(oldPos+n, true)
			oldPos += n
		case diffmatchpatch.DiffInsert:
			resolveUpTo(oldPos, false)
			shift += n
		case diffmatchpatch.DiffDelete:
			delStart, delEnd := oldPos, oldPos+n
			for oi < len(offsets) && origPos[oi] < delEnd {
				if origPos[oi] > delStart {
					offsets[oi] = delStart + shift
				} else {
					offsets[oi] = origPos[oi] + shift
				}
				oi++
			}
			shift -= n
			oldPos += n
		}
	}
	for oi < len(offsets) {
		offsets[oi] = origPos[oi] + shift
		oi++
	}
}

// ApplyObjectDiffWithOffsets applies diffs to s like ApplyObjectDiff, except
// the text delta at field (if any) is routed through
// PatchApplyWithOffsets so that offsets (assumed to index into
// s[field].AsString()) stay valid after the patch.
func ApplyObjectDiffWithOffsets(s map[string]Value, diffs Delta, field string, offsets []int) (map[string]Value, error) {
	fieldOp, hasFieldOp := diffs[field]
	if !hasFieldOp || fieldOp.Op != OpText {
		return ApplyObjectDiff(s, diffs)
	}

	rest := make(Delta, len(diffs))
	for k, v := range diffs {
		if k != field {
			rest[k] = v
		}
	}

	out, err := ApplyObjectDiff(s, rest)
	if err != nil {
		return nil, err
	}

	original, ok := s[field]
	if !ok || original.Kind() != KindString {
		return nil, fmt.Errorf("%w: field %q is not a string", ErrTypeMismatch, field)
	}

	delta, _ := fieldOp.V.(string)
	textDiffs, err := dmp.DiffFromDelta(original.AsString(), delta)
	if err != nil {
		return nil, err
	}
	patches := dmp.PatchMake(original.AsString(), textDiffs)

	patched, err := PatchApplyWithOffsets(patches, original.AsString(), offsets)
	if err != nil {
		return nil, err
	}
	out[field] = String(patched)
	return out, nil
}
