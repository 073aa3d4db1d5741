package service

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"stationhub/backend/services/stations-service/internal/models"
)

// Listing defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// CompileFilter turns raw listing parameters into a StationFilter. Absent or empty
// parameters add no constraint. Power bounds are independent: an inverted range is
// valid and simply matches nothing. The limit is not capped here.
func CompileFilter(params url.Values) (models.StationFilter, error) {
	filter := models.StationFilter{Page: DefaultPage, Limit: DefaultLimit}

	if v := param(params, "status"); v != "" {
		if !models.IsValidStationStatus(v) {
			return filter, &InvalidQueryError{Param: "status", Value: v, Cause: "unknown status"}
		}
		filter.Status = v
	}
	if v := param(params, "connectorType"); v != "" {
		if !models.IsValidConnectorType(v) {
			return filter, &InvalidQueryError{Param: "connectorType", Value: v, Cause: "unknown connector type"}
		}
		filter.ConnectorType = v
	}

	var err error
	if filter.MinPowerKW, err = parsePower(params, "minPower"); err != nil {
		return filter, err
	}
	if filter.MaxPowerKW, err = parsePower(params, "maxPower"); err != nil {
		return filter, err
	}

	if filter.Page, err = parsePositiveInt(params, "page", DefaultPage); err != nil {
		return filter, err
	}
	if filter.Limit, err = parsePositiveInt(params, "limit", DefaultLimit); err != nil {
		return filter, err
	}

	if filter.Page-1 > math.MaxInt/filter.Limit {
		return filter, &InvalidQueryError{
			Param: "page",
			Value: strconv.Itoa(filter.Page),
			Cause: "page window out of range",
		}
	}

	return filter, nil
}

func param(params url.Values, key string) string {
	return strings.TrimSpace(params.Get(key))
}

func parsePower(params url.Values, key string) (*float64, error) {
	raw := param(params, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &InvalidQueryError{Param: key, Value: raw, Cause: "must be a number"}
	}
	return &v, nil
}

// parsePositiveInt falls back to def when the value is absent or not positive.
func parsePositiveInt(params url.Values, key string, def int) (int, error) {
	raw := param(params, key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &InvalidQueryError{Param: key, Value: raw, Cause: "must be an integer"}
	}
	if v <= 0 {
		return def, nil
	}
	return v, nil
}
