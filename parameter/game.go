package parameter

// Game loop and session
const (
	FixedTimestep = 1.0 / 60.0

	// Frame times above this are clamped before feeding the accumulator
	MaxFrameTime = 0.25

	StartingMoney   = 1000
	PointsPerDollar = 10 // Banked drift points per dollar earned

	ShopMessageTime = 2.0 // Seconds a purchase result stays on screen
)
