// Package order contains the manufacturing order aggregate: the Order root, its
// OrderItems, the append-only StatusEvent history, and the measurement
// normalization rules applied to item dimensions.
//
// The aggregate stage of an order is derived, never set directly: it is the
// minimum-rank stage among the order's non-archived items, so an order is only
// as advanced as its least-progressed item. Items move through the ranked stage
// set defined in the stage package; moves to a lower rank are regressions
// (rework) and are reconstructed from the StatusEvent history rather than
// stored separately.
package order
