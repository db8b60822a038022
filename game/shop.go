package game

import (
	"fmt"

	"github.com/driftworks/driftline/physics"
)

// Category groups shop items by the vehicle stat they modify.
type Category uint8

const (
	CategorySteering Category = iota
	CategoryEngine
	CategoryTires
	CategorySuspension
	CategoryWeight
	categoryCount
)

// CategoryCount is the number of shop categories, for iteration.
func CategoryCount() Category { return categoryCount }

func (c Category) String() string {
	switch c {
	case CategorySteering:
		return "STEERING"
	case CategoryEngine:
		return "ENGINE"
	case CategoryTires:
		return "TIRES"
	case CategorySuspension:
		return "SUSPENSION"
	case CategoryWeight:
		return "WEIGHT"
	}
	return "?"
}

// Item is one purchasable part. Value is the stat multiplier the part
// applies when equipped; Durability only matters for tires.
type Item struct {
	ID         string
	Name       string
	Desc       string
	Category   Category
	Price      int
	Value      float64
	Durability float64

	Owned    bool
	Equipped bool
}

// Shop holds the part catalog, the player's money, and what is
// currently equipped per category. Stock parts are always owned.
type Shop struct {
	items    []*Item
	stock    [categoryCount]*Item
	equipped [categoryCount]*Item
	money    int
}

func NewShop() *Shop {
	s := &Shop{}
	s.initStock()
	s.initCatalog()
	return s
}

func (s *Shop) initStock() {
	stock := []*Item{
		{ID: "stock_steering", Name: "Stock Steering", Desc: "Factory steering rack", Category: CategorySteering, Value: 1.0, Durability: 1.0},
		{ID: "stock_engine", Name: "Stock Engine", Desc: "350 HP factory engine", Category: CategoryEngine, Value: 1.0, Durability: 1.0},
		{ID: "stock_tires", Name: "Street Tires", Desc: "Balanced grip and durability", Category: CategoryTires, Value: 1.0, Durability: 1.0},
		{ID: "stock_suspension", Name: "Stock Suspension", Desc: "Factory suspension setup", Category: CategorySuspension, Value: 1.0, Durability: 1.0},
		{ID: "stock_weight", Name: "Stock Body", Desc: "Full interior, stock panels", Category: CategoryWeight, Value: 1.0, Durability: 1.0},
	}
	for _, it := range stock {
		it.Owned = true
		it.Equipped = true
		s.stock[it.Category] = it
		s.equipped[it.Category] = it
	}
}

func (s *Shop) initCatalog() {
	s.items = []*Item{
		{ID: "steering_1", Name: "Quick Ratio Rack", Desc: "+15% steering angle", Category: CategorySteering, Price: 500, Value: 1.15, Durability: 1.0},
		{ID: "steering_2", Name: "Racing Steering Rack", Desc: "+25% steering angle", Category: CategorySteering, Price: 1500, Value: 1.25, Durability: 1.0},
		{ID: "steering_3", Name: "Hydraulic Angle Kit", Desc: "+40% steering angle", Category: CategorySteering, Price: 4000, Value: 1.40, Durability: 1.0},
		{ID: "steering_4", Name: "Competition Angle Kit", Desc: "+60% steering angle", Category: CategorySteering, Price: 8000, Value: 1.60, Durability: 1.0},

		{ID: "engine_1", Name: "Cold Air Intake", Desc: "+10% power (385 HP)", Category: CategoryEngine, Price: 800, Value: 1.10, Durability: 1.0},
		{ID: "engine_2", Name: "Turbo Kit", Desc: "+30% power (455 HP)", Category: CategoryEngine, Price: 3500, Value: 1.30, Durability: 1.0},
		{ID: "engine_3", Name: "Built Motor + Turbo", Desc: "+50% power (525 HP)", Category: CategoryEngine, Price: 8000, Value: 1.50, Durability: 1.0},
		{ID: "engine_4", Name: "Stroker Kit + Big Turbo", Desc: "+80% power (630 HP)", Category: CategoryEngine, Price: 15000, Value: 1.80, Durability: 1.0},

		{ID: "tires_sport", Name: "Sport Compound", Desc: "+15% grip, moderate wear", Category: CategoryTires, Price: 600, Value: 1.15, Durability: 0.8},
		{ID: "tires_semi", Name: "Semi-Slick", Desc: "+25% grip, faster wear", Category: CategoryTires, Price: 1200, Value: 1.25, Durability: 0.6},
		{ID: "tires_slick", Name: "Racing Slicks", Desc: "+40% grip, wears quickly", Category: CategoryTires, Price: 2500, Value: 1.40, Durability: 0.4},
		{ID: "tires_drift", Name: "Drift Compound", Desc: "-10% grip, very durable", Category: CategoryTires, Price: 1000, Value: 0.90, Durability: 1.2},
		{ID: "tires_extreme", Name: "Competition Slicks", Desc: "+50% grip, wears very fast", Category: CategoryTires, Price: 5000, Value: 1.50, Durability: 0.25},

		{ID: "susp_1", Name: "Lowering Springs", Desc: "+10% handling", Category: CategorySuspension, Price: 400, Value: 1.10, Durability: 1.0},
		{ID: "susp_2", Name: "Coilovers", Desc: "+20% handling", Category: CategorySuspension, Price: 1500, Value: 1.20, Durability: 1.0},
		{ID: "susp_3", Name: "Racing Coilovers", Desc: "+30% handling", Category: CategorySuspension, Price: 4000, Value: 1.30, Durability: 1.0},
		{ID: "susp_4", Name: "Pro Drift Suspension", Desc: "+40% handling", Category: CategorySuspension, Price: 7500, Value: 1.40, Durability: 1.0},

		{ID: "weight_1", Name: "Interior Delete", Desc: "-5% weight", Category: CategoryWeight, Price: 300, Value: 0.95, Durability: 1.0},
		{ID: "weight_2", Name: "Lightweight Panels", Desc: "-10% weight", Category: CategoryWeight, Price: 1200, Value: 0.90, Durability: 1.0},
		{ID: "weight_3", Name: "Carbon Fiber Kit", Desc: "-15% weight", Category: CategoryWeight, Price: 4000, Value: 0.85, Durability: 1.0},
		{ID: "weight_4", Name: "Full Lightweight Build", Desc: "-25% weight", Category: CategoryWeight, Price: 10000, Value: 0.75, Durability: 1.0},
	}
}

// Purchase buys an unowned item if the player can afford it. A bought
// item is equipped immediately; buying an owned item just re-equips it.
func (s *Shop) Purchase(it *Item) (string, bool) {
	if !it.Owned {
		if s.money < it.Price {
			return fmt.Sprintf("Not enough money for %s ($%d)", it.Name, it.Price), false
		}
		s.money -= it.Price
		it.Owned = true
	}
	s.Equip(it)
	return fmt.Sprintf("%s equipped", it.Name), true
}

// Equip swaps the item in as the active part for its category.
func (s *Shop) Equip(it *Item) bool {
	if !it.Owned {
		return false
	}
	if cur := s.equipped[it.Category]; cur != nil {
		cur.Equipped = false
	}
	it.Equipped = true
	s.equipped[it.Category] = it
	return true
}

func (s *Shop) AddMoney(amount int) { s.money += amount }
func (s *Shop) SetMoney(amount int) { s.money = amount }
func (s *Shop) Money() int          { return s.money }

// Modifier returns the equipped multiplier for a category.
func (s *Shop) Modifier(c Category) float64 {
	if eq := s.equipped[c]; eq != nil {
		return eq.Value
	}
	return 1.0
}

// Modifiers assembles the full upgrade bundle from the equipped parts.
func (s *Shop) Modifiers() physics.Upgrades {
	u := physics.StockUpgrades()
	u.Steering = s.Modifier(CategorySteering)
	u.Power = s.Modifier(CategoryEngine)
	u.Grip = s.Modifier(CategoryTires)
	u.Handling = s.Modifier(CategorySuspension)
	u.Weight = s.Modifier(CategoryWeight)
	if eq := s.equipped[CategoryTires]; eq != nil {
		u.TireDurability = eq.Durability
	}
	return u
}

// ItemsByCategory lists the stock part followed by the catalog parts.
func (s *Shop) ItemsByCategory(c Category) []*Item {
	result := []*Item{s.stock[c]}
	for _, it := range s.items {
		if it.Category == c {
			result = append(result, it)
		}
	}
	return result
}

func (s *Shop) Equipped(c Category) *Item { return s.equipped[c] }
