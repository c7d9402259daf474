// Package jsondelta computes, applies, and transforms structural deltas
// between JSON-shaped values.
//
// A JSON value is modeled as a Value: null, bool, number, string, an
// ordered array of Values, or an unordered mapping from string keys to
// Values. Given an origin value A and a target value B, Diff produces a
// compact delta D that turns A into B: a bare Delta for an object or list
// diff (applied with ApplyObjectDiff/ApplyListDiff), otherwise a single
// Operation (applied with ApplyDiff). The package also
// performs operational transform: given two concurrent deltas Da and Db
// derived from the same base S, TransformObjectDiff/TransformListDiff
// rewrite Da so that it may be applied after Db and still express Da's
// original intent.
//
// Diffing is opt-in for arrays: a bare Array is replaced whole unless a
// Policy marks it for structural (otype: "list"/"list_dmp") treatment.
// This mirrors the engine's approach to minimal-edit optimality: list
// diffing uses prefix/suffix trimming and positional comparison only, not
// a full LCS/edit-distance search.
//
// String-valued leaves are diffed character-by-character using
// github.com/sergi/go-diff/diffmatchpatch, the Go port of Google's
// diff-match-patch library (referred to in the design notes as TEXTDIFF).
// The same collaborator backs PatchApplyWithOffsets, which replays a text
// patch while remapping a caller-supplied slice of caret offsets.
package jsondelta
