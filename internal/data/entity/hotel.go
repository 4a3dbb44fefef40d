package entity

type HotelCity string

const (
	CityMeccah HotelCity = "MECCAH"
	CityMadina HotelCity = "MADINA"
)

type Hotel struct {
	BaseNoDelete
	Name string    `db:"name"`
	City HotelCity `db:"city"`
}
