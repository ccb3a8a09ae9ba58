package geo

import "github.com/marinerstudio/chartsync/internal/model/core"

func coordOf(lat, lon float64) core.Coordinate {
	return core.Coordinate{Lat: lat, Lon: lon}
}

func regionOf(lat, lon, latSpan, lonSpan float64) core.Region {
	return core.Region{
		Center:  core.Coordinate{Lat: lat, Lon: lon},
		LatSpan: latSpan,
		LonSpan: lonSpan,
	}
}
