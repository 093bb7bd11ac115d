package media

import (
	"regexp"
	"strconv"
)

// Location is a geographic position, in decimal degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// ISO 6709 decimal-degree form as written by cameras and phones, e.g.
// "+37.5090-122.2560/" or "+37.5090-122.2560+012.000/". Altitude is ignored.
var iso6709 = regexp.MustCompile(`^([+-]\d+(?:\.\d+)?)([+-]\d+(?:\.\d+)?)(?:[+-]\d+(?:\.\d+)?)?(?:CRS[^/]*)?/?$`)

// ParseISO6709 returns nil if s is not a valid ISO 6709 location.
func ParseISO6709(s string) *Location {
	m := iso6709.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil
	}
	return &Location{Latitude: lat, Longitude: lon}
}
