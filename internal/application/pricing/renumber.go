package pricing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
)

// RenumberSystems reassigns 1-based system orders strictly by slice position,
// closing any gaps left by deletion. Callers pass the systems pre-sorted in
// the desired final order; no intended order is inferred from ids or
// timestamps. Every other field is preserved unchanged.
func RenumberSystems(systems []entity.QuotationSystem) []entity.QuotationSystem {
	out := make([]entity.QuotationSystem, len(systems))
	copy(out, systems)
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

// RenumberItems closes gaps in item orders within each system and regenerates
// every display number. Items are grouped by system; within a group they are
// renumbered 1..n in the order of their current item order (stable for ties).
// System orders come from the supplied map when given, otherwise each group
// inherits the order already on its first item. The input slice is not
// mutated; item positions in the returned slice match the input.
func RenumberItems(items []entity.QuotationItem, systemOrders map[uuid.UUID]int) []entity.QuotationItem {
	if len(items) == 0 {
		return []entity.QuotationItem{}
	}

	out := make([]entity.QuotationItem, len(items))
	copy(out, items)

	groups := make(map[uuid.UUID][]int)
	var groupKeys []uuid.UUID
	for i := range out {
		if _, seen := groups[out[i].SystemID]; !seen {
			groupKeys = append(groupKeys, out[i].SystemID)
		}
		groups[out[i].SystemID] = append(groups[out[i].SystemID], i)
	}

	for _, systemID := range groupKeys {
		idx := groups[systemID]
		sort.SliceStable(idx, func(a, b int) bool {
			return out[idx[a]].ItemOrder < out[idx[b]].ItemOrder
		})

		systemOrder := out[idx[0]].SystemOrder
		if systemOrders != nil {
			if o, ok := systemOrders[systemID]; ok {
				systemOrder = o
			}
		}

		for seq, i := range idx {
			out[i].ItemOrder = seq + 1
			out[i].SystemOrder = systemOrder
			out[i].DisplayNumber = entity.FormatDisplayNumber(systemOrder, seq+1)
		}
	}

	return out
}

// SystemOrderMap builds the {system id -> order} map RenumberItems consumes
// from a renumbered systems slice.
func SystemOrderMap(systems []entity.QuotationSystem) map[uuid.UUID]int {
	m := make(map[uuid.UUID]int, len(systems))
	for _, s := range systems {
		m[s.ID] = s.Order
	}
	return m
}
