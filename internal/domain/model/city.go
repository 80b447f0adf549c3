package model

// CityCandidate is a projection of a single city record returned by the
// geographic lookup provider. Optional fields are pointers: a nil population
// or coordinate pair means the provider did not report it. Latitude and
// longitude are jointly present or jointly absent.
type CityCandidate struct {
	ID         string
	Name       string
	Country    string
	Region     string
	Population *int64
	Latitude   *float64
	Longitude  *float64
}

// HasCoordinates reports whether both latitude and longitude are present.
func (c CityCandidate) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Merge overlays detail onto c: detail fields win on conflict, fields the
// detail record omits survive from c. Neither receiver nor argument is mutated.
func (c CityCandidate) Merge(detail CityCandidate) CityCandidate {
	out := c
	if detail.ID != "" {
		out.ID = detail.ID
	}
	if detail.Name != "" {
		out.Name = detail.Name
	}
	if detail.Country != "" {
		out.Country = detail.Country
	}
	if detail.Region != "" {
		out.Region = detail.Region
	}
	if detail.Population != nil {
		out.Population = detail.Population
	}
	if detail.Latitude != nil && detail.Longitude != nil {
		out.Latitude = detail.Latitude
		out.Longitude = detail.Longitude
	}
	return out
}
