// Package listview provides a virtual scrolling viewport for Bubble Tea models.
//
// Only the rows inside the viewport (plus a small buffer) are rendered, so the
// grid's virtual scroll mode stays responsive over the full filtered set
// regardless of its size. The item slice can be replaced in place when the
// underlying view recomputes; the selection is clamped rather than reset.
package listview
