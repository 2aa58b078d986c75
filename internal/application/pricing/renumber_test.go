package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
)

func TestRenumberSystems(t *testing.T) {
	tests := []struct {
		name   string
		orders []int
		expect []int
	}{
		{"closes gaps after deletion", []int{2, 4, 5}, []int{1, 2, 3}},
		{"already sequential unchanged", []int{1, 2, 3}, []int{1, 2, 3}},
		{"single system", []int{7}, []int{1}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			systems := make([]entity.QuotationSystem, len(tt.orders))
			for i, o := range tt.orders {
				systems[i] = entity.QuotationSystem{ID: uuid.New(), Name: "S", Order: o, Quantity: 1}
			}

			got := RenumberSystems(systems)
			if len(got) != len(tt.expect) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.expect))
			}
			for i, want := range tt.expect {
				if got[i].Order != want {
					t.Errorf("system %d order = %d, want %d", i, got[i].Order, want)
				}
				if got[i].ID != systems[i].ID || got[i].Name != systems[i].Name {
					t.Errorf("system %d: other fields changed", i)
				}
			}
		})
	}
}

func TestRenumberSystemsUsesPositionNotPriorOrder(t *testing.T) {
	// the array position is the desired final order, prior order values are
	// ignored
	systems := []entity.QuotationSystem{
		{ID: uuid.New(), Order: 9},
		{ID: uuid.New(), Order: 1},
	}
	got := RenumberSystems(systems)
	if got[0].Order != 1 || got[1].Order != 2 {
		t.Errorf("orders = [%d %d], want [1 2]", got[0].Order, got[1].Order)
	}
}

func TestRenumberItems(t *testing.T) {
	sysA := uuid.New()
	sysB := uuid.New()

	items := []entity.QuotationItem{
		{ID: uuid.New(), SystemID: sysA, SystemOrder: 1, ItemOrder: 2},
		{ID: uuid.New(), SystemID: sysA, SystemOrder: 1, ItemOrder: 5},
		{ID: uuid.New(), SystemID: sysB, SystemOrder: 3, ItemOrder: 4},
		{ID: uuid.New(), SystemID: sysA, SystemOrder: 1, ItemOrder: 9},
	}

	got := RenumberItems(items, nil)

	wantOrders := []int{1, 2, 1, 3}
	wantDisplay := []string{"1.1", "1.2", "3.1", "1.3"}
	for i := range got {
		if got[i].ItemOrder != wantOrders[i] {
			t.Errorf("item %d order = %d, want %d", i, got[i].ItemOrder, wantOrders[i])
		}
		if got[i].DisplayNumber != wantDisplay[i] {
			t.Errorf("item %d display = %q, want %q", i, got[i].DisplayNumber, wantDisplay[i])
		}
	}
}

func TestRenumberItemsWithSystemOrders(t *testing.T) {
	sysA := uuid.New()
	sysB := uuid.New()

	items := []entity.QuotationItem{
		{ID: uuid.New(), SystemID: sysA, SystemOrder: 5, ItemOrder: 1},
		{ID: uuid.New(), SystemID: sysB, SystemOrder: 6, ItemOrder: 1},
	}
	orders := map[uuid.UUID]int{sysA: 1, sysB: 2}

	got := RenumberItems(items, orders)
	if got[0].SystemOrder != 1 || got[0].DisplayNumber != "1.1" {
		t.Errorf("item 0 = order %d display %q, want 1 %q", got[0].SystemOrder, got[0].DisplayNumber, "1.1")
	}
	if got[1].SystemOrder != 2 || got[1].DisplayNumber != "2.1" {
		t.Errorf("item 1 = order %d display %q, want 2 %q", got[1].SystemOrder, got[1].DisplayNumber, "2.1")
	}
}

func TestRenumberItemsIdempotent(t *testing.T) {
	sysA := uuid.New()
	items := []entity.QuotationItem{
		{ID: uuid.New(), SystemID: sysA, SystemOrder: 2, ItemOrder: 3},
		{ID: uuid.New(), SystemID: sysA, SystemOrder: 2, ItemOrder: 8},
	}

	once := RenumberItems(items, nil)
	twice := RenumberItems(once, nil)

	for i := range once {
		if once[i].ItemOrder != twice[i].ItemOrder || once[i].DisplayNumber != twice[i].DisplayNumber {
			t.Errorf("item %d not stable: first (%d %q) second (%d %q)",
				i, once[i].ItemOrder, once[i].DisplayNumber, twice[i].ItemOrder, twice[i].DisplayNumber)
		}
	}
}

func TestRenumberItemsEmpty(t *testing.T) {
	got := RenumberItems(nil, nil)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
