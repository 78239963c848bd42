// Package geo implements the planar geometry used to place markers on the
// road/canal network: conversion between geographic and local tangent-plane
// coordinates, point-to-polyline snapping, and metric offsets.
//
// The local plane is an equirectangular approximation anchored at an origin
// point. It is only valid at city scale; distortion grows with distance from
// the origin, so an origin must not be reused across widely separated areas.
package geo

import (
	"errors"
	"math"
)

// EarthRadiusM is the mean earth radius in meters.
const EarthRadiusM = 6371000.0

var (
	// ErrEmptyNetwork is returned when a network contains no segment to snap to.
	ErrEmptyNetwork = errors.New("geo: network has no valid segment")

	// ErrInvalidOrigin is returned for polar origins, where the equirectangular
	// projection degenerates.
	ErrInvalidOrigin = errors.New("geo: origin latitude too close to a pole")
)

// GeoPoint is a geographic coordinate in degrees.
type GeoPoint struct {
	Lon float64 `json:"lon" yaml:"lon"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// LocalPoint is a planar coordinate in meters, valid only relative to the
// origin it was converted with.
type LocalPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline is an ordered sequence of at least two geographic points.
type Polyline []GeoPoint

// Network is a set of polylines. Order among polylines only matters for
// tie-breaking between exactly equidistant segments.
type Network []Polyline

// Projection is the result of snapping a point onto a network: the snapped
// geographic point and the unit tangent of the winning segment in the local
// plane.
type Projection struct {
	Point   GeoPoint   `json:"point"`
	Tangent LocalPoint `json:"tangent"`
}

// ValidateOrigin rejects origins where the projection is degenerate. Call once
// per session before using the origin for conversions.
func ValidateOrigin(origin GeoPoint) error {
	if math.Abs(origin.Lat) >= 90 {
		return ErrInvalidOrigin
	}
	return nil
}

// ToLocal converts a geographic point to planar meters relative to origin.
func ToLocal(p, origin GeoPoint) LocalPoint {
	return LocalPoint{
		X: radians(p.Lon-origin.Lon) * EarthRadiusM * math.Cos(radians(origin.Lat)),
		Y: radians(p.Lat-origin.Lat) * EarthRadiusM,
	}
}

// ToGeo converts a local point back to geographic coordinates. It is the exact
// inverse of ToLocal for the same origin, within floating-point tolerance.
func ToGeo(p LocalPoint, origin GeoPoint) GeoPoint {
	return GeoPoint{
		Lon: origin.Lon + degrees(p.X/(EarthRadiusM*math.Cos(radians(origin.Lat)))),
		Lat: origin.Lat + degrees(p.Y/EarthRadiusM),
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
