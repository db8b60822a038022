package physics

// Upgrades is the multiplicative modifier bundle applied by the shop
// collaborator. All fields default to 1.0 (stock). Applied between
// ticks; takes effect from the next Update.
type Upgrades struct {
	Steering       float64 // Steering authority and response rate
	Power          float64 // Peak engine torque
	Grip           float64 // Tire compound grip
	Handling       float64 // Chassis stability (damping, counter-steer)
	Weight         float64 // Effective mass (<1 = lighter)
	TireDurability float64 // Wear resistance
	Brake          float64 // Brake force
}

// StockUpgrades returns the factory 1.0 bundle.
func StockUpgrades() Upgrades {
	return Upgrades{
		Steering:       1.0,
		Power:          1.0,
		Grip:           1.0,
		Handling:       1.0,
		Weight:         1.0,
		TireDurability: 1.0,
		Brake:          1.0,
	}
}

// ApplyUpgrades installs the bundle and propagates the tire and engine
// modifiers. Call between ticks, not concurrently with Update.
func (v *Vehicle) ApplyUpgrades(u Upgrades) {
	v.upgrades = u
	v.engine.SetPowerModifier(u.Power)
	for _, t := range v.tires {
		t.SetGripModifier(u.Grip)
		t.SetDurabilityModifier(u.TireDurability)
	}
}

func (v *Vehicle) Upgrades() Upgrades { return v.upgrades }
