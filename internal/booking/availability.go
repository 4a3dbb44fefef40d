package booking

import (
	"fmt"

	"pilgrimage-booking/internal/data/entity"
)

// CapacityPolicy decides which members of an incoming request are checked
// against free capacity. Existing reservations always count every non-baby
// member.
type CapacityPolicy string

const (
	// PolicyAdultsOnly checks only the ADULT members of a request.
	PolicyAdultsOnly CapacityPolicy = "adults_only"
	// PolicyNonBaby checks ADULT and CHILD members of a request, the same
	// way existing reservations are counted.
	PolicyNonBaby CapacityPolicy = "non_baby"
)

func ParseCapacityPolicy(s string) (CapacityPolicy, error) {
	switch CapacityPolicy(s) {
	case PolicyAdultsOnly, "":
		return PolicyAdultsOnly, nil
	case PolicyNonBaby:
		return PolicyNonBaby, nil
	}
	return "", fmt.Errorf("unknown capacity policy %q", s)
}

// Guard is the availability guard of a travel.
type Guard struct {
	Policy CapacityPolicy
}

func NewGuard(policy CapacityPolicy) Guard {
	return Guard{Policy: policy}
}

// Occupying counts the members that hold a spot once booked (all but babies).
func Occupying(rooms []entity.ReservationRoom) int {
	n := 0
	for _, r := range rooms {
		for _, m := range r.Members {
			if m.Type != entity.MemberBaby {
				n++
			}
		}
	}
	return n
}

// Requested counts the members of an incoming request that the policy
// checks against free capacity.
func (g Guard) Requested(rooms []entity.ReservationRoom) int {
	if g.Policy == PolicyNonBaby {
		return Occupying(rooms)
	}

	n := 0
	for _, r := range rooms {
		for _, m := range r.Members {
			if m.Type == entity.MemberAdult {
				n++
			}
		}
	}
	return n
}

// Remaining is the free capacity of a travel. It may be negative when the
// ceiling was lowered below current occupancy.
func Remaining(availableSpots, reserved int) int {
	return availableSpots - reserved
}

// Check rejects a request that would overdraw the travel. reserved is the
// occupancy of all other non-cancelled reservations of the travel.
func (g Guard) Check(travel *entity.Travel, reserved int, requested []entity.ReservationRoom) error {
	want := g.Requested(requested)
	if Remaining(travel.AvailableSpots, reserved+want) < 0 {
		return fmt.Errorf("%w: travel %s has %d spot(s) left, request needs %d",
			ErrInsufficientCapacity, travel.Ref, max(Remaining(travel.AvailableSpots, reserved), 0), want)
	}
	return nil
}
