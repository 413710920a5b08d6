package model

import "gorm.io/gorm"

type Branch struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Address  string `json:"address"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	// Geofence center + radius. Zero radius means "no geofence set",
	// in which case passive attendance is disabled for the branch.
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	GeofenceRadiusM float64 `json:"geofence_radius_m"`

	Users []User `json:"users,omitempty"`
}

// HasGeofence reports whether the branch has usable coordinates.
func (b *Branch) HasGeofence() bool {
	return b != nil && b.GeofenceRadiusM > 0 && !(b.Latitude == 0 && b.Longitude == 0)
}
