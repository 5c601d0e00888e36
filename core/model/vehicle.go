package model

// VehicleStatus is the global availability state of a vehicle.
type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleOffRoad     VehicleStatus = "off_road"
	VehicleMaintenance VehicleStatus = "maintenance"
)

// Vehicle is a depot vehicle assignable to an operative. A vehicle may be
// used once per shift per day: day and night crews each claim it
// independently.
type Vehicle struct {
	ID          string
	Name        string
	Status      VehicleStatus
	VehicleType string
	Category    string
	Color       string // default color carried by paired free jobs
}

// Assignable reports whether the vehicle can take new assignments.
func (v Vehicle) Assignable() bool { return v.Status == VehicleActive }
