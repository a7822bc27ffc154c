package maps

// LookupRequest represents the query parameters from the widget renderer.
type LookupRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// DistanceRequest asks for a driving-distance estimate between two
// free-text addresses.
type DistanceRequest struct {
	From string `form:"from" binding:"required,min=3"`
	To   string `form:"to" binding:"required,min=3"`
}

// AddressSuggestion is the normalized data returned to the widget form.
type AddressSuggestion struct {
	Label       string `json:"label"`
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	ZipCode     string `json:"zipCode"`
	City        string `json:"city"`
	State       string `json:"state"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// DistanceEstimate is the straight-line mileage between two geocoded
// addresses, which the renderer feeds into the distance-calculation step.
type DistanceEstimate struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Miles float64 `json:"miles"`
}

type nominatimAddress struct {
	Road         string `json:"road"`
	HouseNumber  string `json:"house_number"`
	Postcode     string `json:"postcode"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Hamlet       string `json:"hamlet"`
	State        string `json:"state"`
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}
