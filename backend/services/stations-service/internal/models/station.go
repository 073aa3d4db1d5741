package models

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Station statuses.
const (
	StationStatusActive      = "Active"
	StationStatusInactive    = "Inactive"
	StationStatusMaintenance = "Maintenance"
)

// Connector types.
const (
	ConnectorType1             = "Type 1"
	ConnectorType2             = "Type 2"
	ConnectorCCS               = "CCS"
	ConnectorCHAdeMO           = "CHAdeMO"
	ConnectorTeslaSupercharger = "Tesla Supercharger"
)

// Field limits for charging stations.
const (
	MaxNameLength        = 100
	MaxAddressLength     = 200
	MaxDescriptionLength = 500
	MinPowerOutputKW     = 1
	MaxPowerOutputKW     = 350
)

var (
	stationStatuses = []string{StationStatusActive, StationStatusInactive, StationStatusMaintenance}
	connectorTypes  = []string{ConnectorType1, ConnectorType2, ConnectorCCS, ConnectorCHAdeMO, ConnectorTeslaSupercharger}
)

// IsValidStationStatus reports whether s is a known station status.
func IsValidStationStatus(s string) bool {
	return contains(stationStatuses, s)
}

// IsValidConnectorType reports whether s is a known connector type.
func IsValidConnectorType(s string) bool {
	return contains(connectorTypes, s)
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// Location of a charging station.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Station is a charging station record.
type Station struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Location      Location      `json:"location"`
	Status        string        `json:"status"`
	PowerOutputKW float64       `json:"powerOutput"`
	ConnectorType string        `json:"connectorType"`
	Price         float64       `json:"price"`
	Description   string        `json:"description,omitempty"`
	OwnerID       int64         `json:"ownerId"`
	Owner         *OwnerSummary `json:"createdBy,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// FieldError describes a single constraint violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Normalize trims free-text fields in place.
func (s *Station) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Location.Address = strings.TrimSpace(s.Location.Address)
	s.Description = strings.TrimSpace(s.Description)
}

// Validate returns every constraint the station violates. An empty result means the
// station may be persisted.
func (s *Station) Validate() []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	switch n := utf8.RuneCountInString(s.Name); {
	case strings.TrimSpace(s.Name) == "":
		add("name", "name is required")
	case n > MaxNameLength:
		add("name", "name cannot exceed 100 characters")
	}

	if !inRange(s.Location.Latitude, -90, 90) {
		add("location.latitude", "latitude must be between -90 and 90")
	}
	if !inRange(s.Location.Longitude, -180, 180) {
		add("location.longitude", "longitude must be between -180 and 180")
	}
	if utf8.RuneCountInString(s.Location.Address) > MaxAddressLength {
		add("location.address", "address cannot exceed 200 characters")
	}

	if !IsValidStationStatus(s.Status) {
		add("status", "status must be one of Active, Inactive, Maintenance")
	}
	if !inRange(s.PowerOutputKW, MinPowerOutputKW, MaxPowerOutputKW) {
		add("powerOutput", "power output must be between 1-350 kW")
	}
	if !IsValidConnectorType(s.ConnectorType) {
		add("connectorType", "invalid connector type")
	}
	if math.IsNaN(s.Price) || math.IsInf(s.Price, 0) || s.Price < 0 {
		add("price", "price cannot be negative")
	}
	if utf8.RuneCountInString(s.Description) > MaxDescriptionLength {
		add("description", "description cannot exceed 500 characters")
	}

	return errs
}

func inRange(v, lo, hi float64) bool {
	if math.IsNaN(v) {
		return false
	}
	return v >= lo && v <= hi
}
