package label

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	returnCodeMin  = 1000000
	returnCodeSpan = 9000000
)

// IntN returns a uniform integer in [0, n).
type IntN func(n int) int

// ReturnCode builds "{pincode},{seven random digits}". A new code is drawn on
// every call; it does not identify the shipment.
func ReturnCode(pincode string, rnd IntN) string {
	if rnd == nil {
		rnd = rand.IntN
	}
	return pincode + "," + strconv.Itoa(returnCodeMin+rnd(returnCodeSpan))
}

// DestinationCode builds "{city without spaces}_{first word of state}_D".
func DestinationCode(city, state string) string {
	cityPart := strings.Join(strings.Fields(city), "")
	statePart := ""
	if words := strings.Fields(state); len(words) > 0 {
		statePart = words[0]
	}
	return cityPart + "_" + statePart + "_D"
}
