// Package attrib defines render state attributes and the ordered attribute
// set a graphics state guardian diffs.
//
// # Kinds and values
//
// Every attribute is stored under a [Kind]. Kinds are ordered, and that
// order is the order in which a state change issues attributes. A [Value]
// knows how to program itself onto a [Backend], what the backend default
// for its kind is, and how it compares to another value of the same kind.
//
// The package provides the common attributes: [Blend], [Color],
// [ColorWrite], [CullFace], [DepthTest], [DepthWrite] and [Texture].
// Callers can add their own kinds starting at [KindUser].
//
// # Merge diff
//
// [Set.Merge] walks the active set and a requested set once, in kind
// order, like a sorted merge join:
//
//	requested only, value set      IssueNew
//	requested only, unset          consumed, nothing issued
//	active only                    UnissueAbsent if complete, else kept
//	both, requested unset          UnissueNull if complete, else kept
//	both, values differ            ReissueChanged
//	both, values compare equal     SkipUnchanged
//
// [MergeDiff] collects the same deltas into a slice.
package attrib
