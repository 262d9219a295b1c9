package lootcase

import (
	"fmt"

	"github.com/linkup-app/linkup-engine/internal/domain"
)

// DrawItem selects one item from the case by weighted random draw.
// rnd must return a value in [0, 1); injecting it keeps draws seedable in
// tests. Weights are strictly positive for every item, so the draw always
// selects something, proportional to 1/(value+1)^2 with the cheap boost.
func DrawItem(c domain.Case, rnd func() float64) (domain.CaseItem, error) {
	if len(c.Items) == 0 {
		return domain.CaseItem{}, fmt.Errorf("%w: case %q has no items", domain.ErrInvalidState, c.ID)
	}

	weights := make([]float64, len(c.Items))
	var total float64
	for i, item := range c.Items {
		w := itemWeight(item, c.Price)
		weights[i] = w
		total += w
	}

	roll := rnd() * total

	var cumulative float64
	for i, item := range c.Items {
		cumulative += weights[i]
		if cumulative >= roll {
			return item, nil
		}
	}

	// Floating point slack: the roll landed past the final cumulative sum
	return c.Items[len(c.Items)-1], nil
}

func itemWeight(item domain.CaseItem, casePrice int64) float64 {
	denom := float64(item.Value) + WeightEpsilon
	w := 1 / (denom * denom)
	if item.Value < casePrice {
		w *= CheapBoost
	}
	return w
}
