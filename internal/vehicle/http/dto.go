package http

import (
	"time"

	"github.com/drivelane/driving-school-backend/internal/vehicle"
)

type CreateVehicleRequest struct {
	LocationID   string `json:"location_id" binding:"required,uuid"`
	Name         string `json:"name" binding:"required"`
	Plate        string `json:"plate"`
	Transmission string `json:"transmission" binding:"required,oneof=manual automatic"`
	Active       *bool  `json:"active"`
}

type UpdateVehicleRequest struct {
	LocationID   *string `json:"location_id" binding:"omitempty,uuid"`
	Name         *string `json:"name"`
	Plate        *string `json:"plate"`
	Transmission *string `json:"transmission" binding:"omitempty,oneof=manual automatic"`
	Active       *bool   `json:"active"`
}

type VehicleResponse struct {
	ID           string    `json:"id"`
	LocationID   string    `json:"location_id"`
	Name         string    `json:"name"`
	Plate        string    `json:"plate"`
	Transmission string    `json:"transmission"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewVehicleResponse(v *vehicle.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		LocationID:   v.LocationID,
		Name:         v.Name,
		Plate:        v.Plate,
		Transmission: string(v.Transmission),
		Active:       v.Active,
		CreatedAt:    v.CreatedAt,
	}
}
