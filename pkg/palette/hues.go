package palette

type hueInfo struct {
	hueRange    [2]int
	lowerBounds [][2]int // (saturation, minimum brightness) pairs
}

func (h hueInfo) saturationRange() (int, int) {
	return h.lowerBounds[0][0], h.lowerBounds[len(h.lowerBounds)-1][0]
}

var namedHues = map[string]hueInfo{
	"monochrome": {
		hueRange:    [2]int{0, 0},
		lowerBounds: [][2]int{{0, 0}, {100, 0}},
	},
	"red": {
		hueRange:    [2]int{-26, 18},
		lowerBounds: [][2]int{{20, 100}, {30, 92}, {40, 89}, {50, 85}, {60, 78}, {70, 70}, {80, 60}, {90, 55}, {100, 50}},
	},
	"orange": {
		hueRange:    [2]int{18, 46},
		lowerBounds: [][2]int{{20, 100}, {30, 93}, {40, 88}, {50, 86}, {60, 85}, {70, 70}, {100, 70}},
	},
	"yellow": {
		hueRange:    [2]int{46, 62},
		lowerBounds: [][2]int{{25, 100}, {40, 94}, {50, 89}, {60, 86}, {70, 84}, {80, 82}, {90, 80}, {100, 75}},
	},
	"green": {
		hueRange:    [2]int{62, 178},
		lowerBounds: [][2]int{{30, 100}, {40, 90}, {50, 85}, {60, 81}, {70, 74}, {80, 64}, {90, 50}, {100, 40}},
	},
	"blue": {
		hueRange:    [2]int{178, 257},
		lowerBounds: [][2]int{{20, 100}, {30, 86}, {40, 80}, {50, 74}, {60, 60}, {70, 52}, {80, 44}, {90, 39}, {100, 35}},
	},
	"purple": {
		hueRange:    [2]int{257, 282},
		lowerBounds: [][2]int{{20, 100}, {30, 87}, {40, 79}, {50, 70}, {60, 65}, {70, 59}, {80, 52}, {90, 45}, {100, 42}},
	},
	"pink": {
		hueRange:    [2]int{282, 334},
		lowerBounds: [][2]int{{20, 100}, {30, 90}, {40, 86}, {60, 84}, {80, 80}, {90, 75}, {100, 73}},
	},
}

// wheelOrder lists the chromatic hues in the order their ranges cover the wheel.
var wheelOrder = []string{"red", "orange", "yellow", "green", "blue", "purple", "pink"}

// colorInfo returns the named hue whose range contains h.
func colorInfo(h int) hueInfo {
	if h >= 334 && h <= 360 {
		h -= 360
	}
	for _, name := range wheelOrder {
		c := namedHues[name]
		if h >= c.hueRange[0] && h <= c.hueRange[1] {
			return c
		}
	}
	return namedHues["red"]
}
