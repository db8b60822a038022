package game

import "testing"

func findItem(s *Shop, id string) *Item {
	for _, it := range s.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func TestShopStartsOnStockParts(t *testing.T) {
	s := NewShop()
	for c := Category(0); c < categoryCount; c++ {
		eq := s.Equipped(c)
		if eq == nil || !eq.Owned || !eq.Equipped {
			t.Fatalf("category %v has no equipped stock part", c)
		}
		if got := s.Modifier(c); got != 1.0 {
			t.Errorf("stock modifier for %v = %v, want 1.0", c, got)
		}
	}
}

func TestPurchaseRequiresMoney(t *testing.T) {
	s := NewShop()
	s.SetMoney(100)
	item := findItem(s, "engine_1") // $800

	msg, ok := s.Purchase(item)
	if ok {
		t.Fatalf("purchase succeeded with insufficient funds: %q", msg)
	}
	if item.Owned || s.Money() != 100 {
		t.Errorf("failed purchase mutated state: owned=%v money=%d", item.Owned, s.Money())
	}
}

func TestPurchaseDeductsAndEquips(t *testing.T) {
	s := NewShop()
	s.SetMoney(1000)
	item := findItem(s, "engine_1")

	if _, ok := s.Purchase(item); !ok {
		t.Fatal("purchase failed with sufficient funds")
	}
	if s.Money() != 200 {
		t.Errorf("money after purchase = %d, want 200", s.Money())
	}
	if !item.Owned || !item.Equipped {
		t.Error("purchased item not owned+equipped")
	}
	if s.Modifier(CategoryEngine) != 1.10 {
		t.Errorf("engine modifier = %v, want 1.10", s.Modifier(CategoryEngine))
	}
	if stock := s.stock[CategoryEngine]; stock.Equipped {
		t.Error("stock part still flagged equipped")
	}
}

func TestRepurchaseIsFreeReequip(t *testing.T) {
	s := NewShop()
	s.SetMoney(2000)
	item := findItem(s, "engine_1")
	s.Purchase(item)
	s.Equip(s.stock[CategoryEngine])

	before := s.Money()
	if _, ok := s.Purchase(item); !ok {
		t.Fatal("re-purchase of owned item failed")
	}
	if s.Money() != before {
		t.Errorf("re-equip charged money: %d -> %d", before, s.Money())
	}
	if s.Equipped(CategoryEngine) != item {
		t.Error("owned item not re-equipped")
	}
}

func TestEquipRejectsUnowned(t *testing.T) {
	s := NewShop()
	if s.Equip(findItem(s, "steering_4")) {
		t.Error("equipped an unowned item")
	}
}

func TestModifiersBundle(t *testing.T) {
	s := NewShop()
	s.SetMoney(100000)
	s.Purchase(findItem(s, "steering_2")) // 1.25
	s.Purchase(findItem(s, "engine_3"))   // 1.50
	s.Purchase(findItem(s, "tires_semi")) // 1.25 grip, 0.6 durability
	s.Purchase(findItem(s, "susp_2"))     // 1.20
	s.Purchase(findItem(s, "weight_3"))   // 0.85

	u := s.Modifiers()
	if u.Steering != 1.25 || u.Power != 1.50 || u.Grip != 1.25 ||
		u.Handling != 1.20 || u.Weight != 0.85 {
		t.Errorf("bundle = %+v", u)
	}
	if u.TireDurability != 0.6 {
		t.Errorf("tire durability = %v, want 0.6", u.TireDurability)
	}
	if u.Brake != 1.0 {
		t.Errorf("brake modifier = %v, want stock 1.0", u.Brake)
	}
}

func TestItemsByCategoryLeadsWithStock(t *testing.T) {
	s := NewShop()
	items := s.ItemsByCategory(CategoryTires)
	if len(items) != 6 {
		t.Fatalf("tire list length = %d, want 6", len(items))
	}
	if items[0] != s.stock[CategoryTires] {
		t.Error("stock part is not first in the list")
	}
	for _, it := range items[1:] {
		if it.Category != CategoryTires {
			t.Errorf("foreign category item %q in tire list", it.ID)
		}
	}
}
