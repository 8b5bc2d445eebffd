package order

import (
	"time"

	"github.com/google/uuid"
)

type Location string

const (
	LocationRestaurant Location = "restaurant"
	LocationBar        Location = "bar"
	LocationOutdoor    Location = "outdoor"
)

type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableOccupied    TableStatus = "occupied"
	TableReserved    TableStatus = "reserved"
	TableMaintenance TableStatus = "maintenance"
)

type Table struct {
	ID        uuid.UUID
	Number    int
	Capacity  int
	Location  Location
	Status    TableStatus
	CreatedAt time.Time
}
