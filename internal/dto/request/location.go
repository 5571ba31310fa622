package request

import "car-rental/internal/data/entity"

type CoordinatesRequest struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// LocationRequest is a booking pickup/dropoff point; every part is required.
type LocationRequest struct {
	Address     string              `json:"address" validate:"required,max=200"`
	City        string              `json:"city" validate:"required,max=100"`
	State       string              `json:"state" validate:"required,max=100"`
	Coordinates *CoordinatesRequest `json:"coordinates,omitempty"`
}

// CarLocationRequest is where a car is parked; the street address is optional.
type CarLocationRequest struct {
	Address     string              `json:"address,omitempty" validate:"omitempty,max=200"`
	City        string              `json:"city" validate:"required,max=100"`
	State       string              `json:"state" validate:"required,max=100"`
	Coordinates *CoordinatesRequest `json:"coordinates,omitempty"`
}

func (c *CoordinatesRequest) ToEntity() *entity.Coordinates {
	if c == nil {
		return nil
	}
	return &entity.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
}

func (l LocationRequest) ToEntity() entity.Location {
	return entity.Location{
		Address:     l.Address,
		City:        l.City,
		State:       l.State,
		Coordinates: l.Coordinates.ToEntity(),
	}
}

func (l CarLocationRequest) ToEntity() entity.Location {
	return entity.Location{
		Address:     l.Address,
		City:        l.City,
		State:       l.State,
		Coordinates: l.Coordinates.ToEntity(),
	}
}
