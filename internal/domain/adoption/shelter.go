package adoption

import "net/url"

// Shelter es la info de contacto del refugio que muestra el sitio.
type Shelter struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Phone   string  `json:"phone,omitempty"`
	Email   string  `json:"email,omitempty"`
	MapsURL string  `json:"maps_url"`
}

// NewShelter completa MapsURL a partir de la dirección.
func NewShelter(name, address string, lat, lng float64, phone, email string) Shelter {
	return Shelter{
		Name:    name,
		Address: address,
		Lat:     lat,
		Lng:     lng,
		Phone:   phone,
		Email:   email,
		MapsURL: MapsSearchURL(address),
	}
}

func MapsSearchURL(address string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(address)
}
