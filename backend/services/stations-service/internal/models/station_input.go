package models

// LocationInput carries location fields supplied by a client. Nil means "not supplied".
type LocationInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   *string  `json:"address"`
}

// StationInput is the payload accepted when creating a station.
type StationInput struct {
	Name          string        `json:"name"`
	Location      LocationInput `json:"location"`
	Status        string        `json:"status"`
	PowerOutputKW *float64      `json:"powerOutput"`
	ConnectorType string        `json:"connectorType"`
	Price         *float64      `json:"price"`
	Description   string        `json:"description"`
}

// StationPatch is a merge patch for an existing station. Only non-nil fields change.
// The owner is deliberately not part of the accepted field set.
type StationPatch struct {
	Name          *string        `json:"name"`
	Location      *LocationInput `json:"location"`
	Status        *string        `json:"status"`
	PowerOutputKW *float64       `json:"powerOutput"`
	ConnectorType *string        `json:"connectorType"`
	Price         *float64       `json:"price"`
	Description   *string        `json:"description"`
}

// Apply merges the patch into a copy of s and returns it.
func (p StationPatch) Apply(s Station) Station {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Location != nil {
		if p.Location.Latitude != nil {
			s.Location.Latitude = *p.Location.Latitude
		}
		if p.Location.Longitude != nil {
			s.Location.Longitude = *p.Location.Longitude
		}
		if p.Location.Address != nil {
			s.Location.Address = *p.Location.Address
		}
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.PowerOutputKW != nil {
		s.PowerOutputKW = *p.PowerOutputKW
	}
	if p.ConnectorType != nil {
		s.ConnectorType = *p.ConnectorType
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	return s
}

// Build turns the input into a station with defaults applied. Required numeric fields
// that were not supplied are reported as field errors.
func (in StationInput) Build() (Station, []FieldError) {
	var missing []FieldError
	s := Station{
		Name:          in.Name,
		Status:        in.Status,
		ConnectorType: in.ConnectorType,
		Description:   in.Description,
	}
	if s.Status == "" {
		s.Status = StationStatusActive
	}

	if in.Location.Latitude != nil {
		s.Location.Latitude = *in.Location.Latitude
	} else {
		missing = append(missing, FieldError{Field: "location.latitude", Message: "latitude is required"})
	}
	if in.Location.Longitude != nil {
		s.Location.Longitude = *in.Location.Longitude
	} else {
		missing = append(missing, FieldError{Field: "location.longitude", Message: "longitude is required"})
	}
	if in.Location.Address != nil {
		s.Location.Address = *in.Location.Address
	}
	if in.PowerOutputKW != nil {
		s.PowerOutputKW = *in.PowerOutputKW
	} else {
		missing = append(missing, FieldError{Field: "powerOutput", Message: "power output is required"})
	}
	if in.Price != nil {
		s.Price = *in.Price
	}

	return s, missing
}
