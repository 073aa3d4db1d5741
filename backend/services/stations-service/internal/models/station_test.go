package models

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStation() Station {
	return Station{
		Name:          "Depot North",
		Location:      Location{Latitude: 52.52, Longitude: 13.405, Address: "Alexanderplatz 1"},
		Status:        StationStatusActive,
		PowerOutputKW: 150,
		ConnectorType: ConnectorCCS,
		Price:         0.39,
	}
}

func fields(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestStationValidateAcceptsBoundaries(t *testing.T) {
	s := validStation()
	s.Location = Location{Latitude: -90, Longitude: 180}
	s.PowerOutputKW = MinPowerOutputKW
	s.Price = 0
	s.Name = strings.Repeat("n", MaxNameLength)
	s.Description = strings.Repeat("d", MaxDescriptionLength)
	assert.Empty(t, s.Validate())

	s.PowerOutputKW = MaxPowerOutputKW
	s.Location = Location{Latitude: 90, Longitude: -180, Address: strings.Repeat("a", MaxAddressLength)}
	assert.Empty(t, s.Validate())
}

func TestStationValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Station)
		field  string
	}{
		{"empty name", func(s *Station) { s.Name = "   " }, "name"},
		{"long name", func(s *Station) { s.Name = strings.Repeat("x", MaxNameLength+1) }, "name"},
		{"latitude high", func(s *Station) { s.Location.Latitude = 90.0001 }, "location.latitude"},
		{"latitude NaN", func(s *Station) { s.Location.Latitude = math.NaN() }, "location.latitude"},
		{"longitude low", func(s *Station) { s.Location.Longitude = -180.5 }, "location.longitude"},
		{"long address", func(s *Station) { s.Location.Address = strings.Repeat("a", MaxAddressLength+1) }, "location.address"},
		{"unknown status", func(s *Station) { s.Status = "Broken" }, "status"},
		{"power zero", func(s *Station) { s.PowerOutputKW = 0 }, "powerOutput"},
		{"power too high", func(s *Station) { s.PowerOutputKW = 350.1 }, "powerOutput"},
		{"power infinite", func(s *Station) { s.PowerOutputKW = math.Inf(1) }, "powerOutput"},
		{"unknown connector", func(s *Station) { s.ConnectorType = "Schuko" }, "connectorType"},
		{"negative price", func(s *Station) { s.Price = -0.01 }, "price"},
		{"long description", func(s *Station) { s.Description = strings.Repeat("d", MaxDescriptionLength+1) }, "description"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validStation()
			tc.mutate(&s)
			assert.Equal(t, []string{tc.field}, fields(s.Validate()))
		})
	}
}

func TestStationInputBuildDefaultsAndMissing(t *testing.T) {
	lat, lng, power := 10.0, 20.0, 22.0
	s, missing := StationInput{
		Name:          "Kerbside",
		Location:      LocationInput{Latitude: &lat, Longitude: &lng},
		PowerOutputKW: &power,
		ConnectorType: ConnectorType2,
	}.Build()
	require.Empty(t, missing)
	assert.Equal(t, StationStatusActive, s.Status)
	assert.Zero(t, s.Price)
	assert.Equal(t, 22.0, s.PowerOutputKW)

	_, missing = StationInput{Name: "Empty"}.Build()
	assert.Equal(t, []string{"location.latitude", "location.longitude", "powerOutput"}, fields(missing))
}

func TestStationPatchApplyOnlyTouchesSuppliedFields(t *testing.T) {
	base := validStation()
	base.ID = "abc"
	base.OwnerID = 7

	name := "Renamed"
	lat := -33.9
	patched := StationPatch{Name: &name, Location: &LocationInput{Latitude: &lat}}.Apply(base)

	assert.Equal(t, "Renamed", patched.Name)
	assert.Equal(t, -33.9, patched.Location.Latitude)
	assert.Equal(t, base.Location.Longitude, patched.Location.Longitude)
	assert.Equal(t, base.Location.Address, patched.Location.Address)
	assert.Equal(t, base.PowerOutputKW, patched.PowerOutputKW)
	assert.Equal(t, int64(7), patched.OwnerID)
	assert.Equal(t, "Depot North", base.Name, "original must not change")
}

func TestStationFilterSkip(t *testing.T) {
	assert.Equal(t, 0, StationFilter{Page: 1, Limit: 10}.Skip())
	assert.Equal(t, 20, StationFilter{Page: 3, Limit: 10}.Skip())
}
