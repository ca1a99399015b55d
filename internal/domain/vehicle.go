package domain

// Vehicle is a catalog entry: immutable reference data loaded from the
// embedded catalog at startup. The booking engine only ever reads vehicles;
// nothing in the system mutates one.
type Vehicle struct {
	ID             int64          `json:"id"`
	Brand          string         `json:"brand"`
	Name           string         `json:"name"`
	Year           int            `json:"year"`
	PricePerDay    float64        `json:"price_per_day"`
	Deposit        float64        `json:"deposit"`
	Category       string         `json:"category"`
	Description    string         `json:"description"`
	Features       []string       `json:"features"`
	Specifications Specifications `json:"specifications"`
	Images         []string       `json:"images"`
}

// Specifications is the technical data block of a catalog entry.
type Specifications struct {
	Engine       string `json:"engine"`
	Transmission string `json:"transmission"`
	Power        string `json:"power"`
	TopSpeed     string `json:"top_speed"`
	Acceleration string `json:"acceleration"`
	Seats        int    `json:"seats"`
}
