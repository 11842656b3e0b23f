package guidance

import (
	"math"

	"github.com/lintang-b-s/roadroute/pkg/geo"
)

type TurnSign int

const (
	START TurnSign = iota
	CONTINUE_ON_STREET
	TURN_SLIGHT_LEFT
	TURN_SLIGHT_RIGHT
	TURN_LEFT
	TURN_RIGHT
	TURN_SHARP_LEFT
	TURN_SHARP_RIGHT
	FINISH
)

func (s TurnSign) String() string {
	switch s {
	case START:
		return "start"
	case CONTINUE_ON_STREET:
		return "continue"
	case TURN_SLIGHT_LEFT:
		return "slight_left"
	case TURN_SLIGHT_RIGHT:
		return "slight_right"
	case TURN_LEFT:
		return "left"
	case TURN_RIGHT:
		return "right"
	case TURN_SHARP_LEFT:
		return "sharp_left"
	case TURN_SHARP_RIGHT:
		return "sharp_right"
	case FINISH:
		return "finish"
	}
	return "unknown"
}

func (s TurnSign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// getTurnSign classifies the heading change from prevBearing to bearing (both in degree).
func getTurnSign(prevBearing, bearing float64) TurnSign {
	delta := geo.DeltaBearing(prevBearing, bearing)
	absDelta := math.Abs(delta)
	switch {
	case absDelta < 12:
		return CONTINUE_ON_STREET
	case absDelta < 40:
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	case absDelta < 105:
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	case delta < 0:
		return TURN_SHARP_LEFT
	default:
		return TURN_SHARP_RIGHT
	}
}

var compassPoints = [...]string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}

func compassDirection(bearing float64) string {
	return compassPoints[int(math.Mod(bearing+22.5, 360)/45)%len(compassPoints)]
}
