package squirrel

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Trip is the journey of one unit: from the root down to the hole it fills
// and, during replay, back up to the root.
type Trip struct {
	// Order is the 1-based placement order.
	Order int `json:"order"`
	// Path concatenates identifiers from the root to the target.
	Path string `json:"path"`
	// Target is the UID of the filled node. Zero for trips read from tokens.
	Target uuid.UUID `json:"target"`
}

// String renders the trip token: the order directly followed by the path,
// e.g. "3ABE".
func (t Trip) String() string {
	return strconv.Itoa(t.Order) + t.Path
}

// ParseTrip reads a trip token produced by Trip.String.
// The order must be a positive integer and the path at least two letters.
func ParseTrip(token string) (Trip, error) {
	i := 0
	for i < len(token) && '0' <= token[i] && token[i] <= '9' {
		i++
	}
	if i == 0 {
		return Trip{}, fmt.Errorf("%w: %q has no order", ErrTripFormat, token)
	}
	order, err := strconv.Atoi(token[:i])
	if err != nil || order < 1 {
		return Trip{}, fmt.Errorf("%w: %q has a bad order", ErrTripFormat, token)
	}
	path := token[i:]
	if len(path) < 2 {
		return Trip{}, fmt.Errorf("%w: %q has no target below the root", ErrTripFormat, token)
	}
	for j := 0; j < len(path); j++ {
		if !isLetter(path[j]) {
			return Trip{}, fmt.Errorf("%w: %q has %q in its path", ErrTripFormat, token, path[j])
		}
	}

	return Trip{Order: order, Path: path}, nil
}
