package queries

import (
	"errors"

	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/pkg/guard"
)

var ErrGetItemRegressionsQueryIsNotConstructed = errors.New(
	"GetItemRegressionsQuery must be created via NewGetItemRegressionsQuery constructor",
)

// GetItemRegressionsQuery lists the backward stage steps of one item, replayed
// from its full status-event history.
type GetItemRegressionsQuery struct {
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetItemRegressionsQuery creates a regression query for one item.
func NewGetItemRegressionsQuery(itemID kernel.UUID) (GetItemRegressionsQuery, error) {
	if err := itemID.Validate(); err != nil {
		return GetItemRegressionsQuery{}, err
	}

	return GetItemRegressionsQuery{
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetItemRegressionsQuery) Validate() error {
	return q.guard.Validate(ErrGetItemRegressionsQueryIsNotConstructed)
}

// ItemID returns the identifier of the item to inspect.
func (q GetItemRegressionsQuery) ItemID() kernel.UUID { return q.itemID }

// GetItemRegressionsQueryResponse holds an item's regressions in event order.
// Empty when the item never moved backward.
type GetItemRegressionsQueryResponse struct {
	ItemID      kernel.UUID
	Regressions []RegressionDetail
}
