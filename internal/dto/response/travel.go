package response

import (
	"time"

	"pilgrimage-booking/internal/data/entity"
)

const dateLayout = "2006-01-02"

type HotelResponse struct {
	ID   string           `json:"id"`
	Name string           `json:"name"`
	City entity.HotelCity `json:"city"`
}

type PriceEntryResponse struct {
	HotelID    string `json:"hotel_id"`
	Double     string `json:"double"`
	Triple     string `json:"triple"`
	Quadruple  string `json:"quadruple"`
	Quintuple  string `json:"quintuple"`
	Food       string `json:"food"`
	Commission string `json:"commission"`
}

// TravelResponse reports capacity as of the read: Reserved counts the
// non-baby members of active reservations.
type TravelResponse struct {
	ID             string               `json:"id"`
	Ref            string               `json:"ref"`
	Name           string               `json:"name"`
	DepartAt       string               `json:"depart_at"`
	ArriveAt       string               `json:"arrive_at"`
	DurationNights int                  `json:"duration_nights"`
	AvailableSpots int                  `json:"available_spots"`
	Reserved       int                  `json:"reserved"`
	Remaining      int                  `json:"remaining"`
	Distribution   string               `json:"distribution,omitempty"`
	PriceEntries   []PriceEntryResponse `json:"price_entries"`
	CreatedAt      time.Time            `json:"created_at"`
}

func HotelToResponse(h *entity.Hotel) HotelResponse {
	return HotelResponse{
		ID:   h.ID.String(),
		Name: h.Name,
		City: h.City,
	}
}

func PriceEntryToResponse(e entity.PriceEntry) PriceEntryResponse {
	return PriceEntryResponse{
		HotelID:    e.HotelID.String(),
		Double:     e.Double.StringFixed(2),
		Triple:     e.Triple.StringFixed(2),
		Quadruple:  e.Quadruple.StringFixed(2),
		Quintuple:  e.Quintuple.StringFixed(2),
		Food:       e.Food.StringFixed(2),
		Commission: e.Commission.StringFixed(2),
	}
}

func TravelToResponse(t *entity.Travel, reserved, remaining int) TravelResponse {
	entries := make([]PriceEntryResponse, len(t.PriceEntries))
	for i, e := range t.PriceEntries {
		entries[i] = PriceEntryToResponse(e)
	}

	return TravelResponse{
		ID:             t.ID.String(),
		Ref:            t.Ref,
		Name:           t.Name,
		DepartAt:       t.DepartAt.Format(dateLayout),
		ArriveAt:       t.ArriveAt.Format(dateLayout),
		DurationNights: t.DurationNights,
		AvailableSpots: t.AvailableSpots,
		Reserved:       reserved,
		Remaining:      remaining,
		Distribution:   t.Distribution,
		PriceEntries:   entries,
		CreatedAt:      t.CreatedAt,
	}
}
