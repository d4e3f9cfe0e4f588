// Package grid implements the tabular data display engine behind a data table.
//
// An Engine combines four stages over an in-memory row collection:
//   - FilterState: the global search string and per-column filter descriptors
//   - Debouncer: coalesces bursts of filter mutations into one recompute
//   - Evaluate: column filters (AND) followed by the global filter (OR across fields)
//   - Pagination: page slicing, visible range and an ellipsis-collapsed page-button model
//
// Data flows one way: rows + filters → filtered rows → optional sort → view rows.
// Every stage except the debouncer is a pure function of its inputs.
//
// Rows are opaque; the engine reads fields through a caller-supplied Accessor,
// so any struct or map type can back a table without reflection.
package grid
