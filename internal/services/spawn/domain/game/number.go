package game

import (
	"fmt"
	"strconv"
)

// Number is the smallest player count at which a slot is in play.
// NumberNone marks slots that are always in play.
type Number uint8

const (
	NumberNone Number = 0
	MinNumber  Number = 1
	MaxNumber  Number = 5
)

// Valid reports 1..5.
func (n Number) Valid() bool {
	return n >= MinNumber && n <= MaxNumber
}

// ActiveFor reports whether a slot numbered n is in play for players.
func (n Number) ActiveFor(players Number) bool {
	return n == NumberNone || n <= players
}

func (n Number) String() string {
	if n == NumberNone {
		return "*"
	}
	return strconv.Itoa(int(n))
}

// ParseNumber reads a single digit 1..5.
func ParseNumber(digit byte) (Number, error) {
	if digit < '1' || digit > '5' {
		return NumberNone, fmt.Errorf("unknown number %q", digit)
	}
	return Number(digit - '0'), nil
}
