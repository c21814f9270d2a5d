// Package inventory applies signed stock adjustments to products. Each
// adjustment is an independent row-level increment; there is no transaction
// spanning a batch of deltas and no lower bound on the resulting quantity.
// Two racing sales orders can both pass the stock check upstream and drive a
// quantity negative; that window is part of the documented contract, not a
// bug in this package.
package inventory

import "github.com/google/uuid"

// Delta is a signed quantity change for one product. Positive deltas add
// stock (purchases), negative deltas remove it (sales).
type Delta struct {
	ProductID uuid.UUID
	Quantity  int
}

// Invert returns the deltas with their signs flipped, used when an order is
// deleted to undo exactly the adjustments applied at creation.
func Invert(deltas []Delta) []Delta {
	inverted := make([]Delta, len(deltas))
	for i, d := range deltas {
		inverted[i] = Delta{ProductID: d.ProductID, Quantity: -d.Quantity}
	}
	return inverted
}
