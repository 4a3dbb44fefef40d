package request

type CreateHotelRequest struct {
	Name string `json:"name" validate:"required,min=2,max=150"`
	City string `json:"city" validate:"required,oneof=MECCAH MADINA"`
}

type PriceEntryRequest struct {
	HotelID    string `json:"hotel_id" validate:"required,uuid"`
	Double     string `json:"double" validate:"required,price"`
	Triple     string `json:"triple" validate:"required,price"`
	Quadruple  string `json:"quadruple" validate:"required,price"`
	Quintuple  string `json:"quintuple" validate:"required,price"`
	Food       string `json:"food" validate:"required,price"`
	Commission string `json:"commission" validate:"required,price"`
}

// TravelRequest is used for both create and update. On update the price
// entries replace the existing ones.
type TravelRequest struct {
	Name           string              `json:"name" validate:"required,min=2,max=150"`
	DepartAt       string              `json:"depart_at" validate:"required,datetime=2006-01-02"`
	ArriveAt       string              `json:"arrive_at" validate:"required,datetime=2006-01-02"`
	AvailableSpots int                 `json:"available_spots" validate:"gte=0"`
	Distribution   string              `json:"distribution" validate:"max=255"`
	PriceEntries   []PriceEntryRequest `json:"price_entries" validate:"required,min=1,dive"`
}
