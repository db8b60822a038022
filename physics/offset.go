package physics

import (
	"github.com/driftworks/driftline/parameter"
	"github.com/driftworks/driftline/vmath"
)

// TirePosition identifies one of the four wheel stations. It doubles as
// the lookup key for the fixed geometric offset from the vehicle center.
type TirePosition uint8

const (
	FrontLeft TirePosition = iota
	FrontRight
	RearLeft
	RearRight
	TireCount = 4
)

func (p TirePosition) IsFront() bool {
	return p == FrontLeft || p == FrontRight
}

func (p TirePosition) IsRear() bool {
	return p == RearLeft || p == RearRight
}

func (p TirePosition) String() string {
	switch p {
	case FrontLeft:
		return "front-left"
	case FrontRight:
		return "front-right"
	case RearLeft:
		return "rear-left"
	case RearRight:
		return "rear-right"
	}
	return "unknown"
}

// Offset returns the wheel station's position relative to the vehicle
// center in the body frame: +X forward, +Y right.
func (p TirePosition) Offset() vmath.Vec2 {
	halfBase := parameter.Wheelbase / 2
	halfTrack := parameter.TrackWidth / 2

	switch p {
	case FrontLeft:
		return vmath.Vec2{X: halfBase, Y: -halfTrack}
	case FrontRight:
		return vmath.Vec2{X: halfBase, Y: halfTrack}
	case RearLeft:
		return vmath.Vec2{X: -halfBase, Y: -halfTrack}
	case RearRight:
		return vmath.Vec2{X: -halfBase, Y: halfTrack}
	}
	return vmath.Vec2{}
}
