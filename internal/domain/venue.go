package domain

type Coordinate struct {
	Lat, Lng float64
}

func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

type BusinessType string

const (
	FoodTruck     BusinessType = "food_truck"
	Retail        BusinessType = "retail"
	Service       BusinessType = "service"
	Entertainment BusinessType = "entertainment"
)

func (b BusinessType) Valid() bool {
	switch b {
	case FoodTruck, Retail, Service, Entertainment:
		return true
	}
	return false
}

type Venue struct {
	ID         string
	Name       string
	Categories []string
	Coord      Coordinate
	Rating     *float64 // 0..5
	Popularity *float64 // 0..100
	Price      *int     // 1..4
	RawJSON    []byte   // full place payload
}
