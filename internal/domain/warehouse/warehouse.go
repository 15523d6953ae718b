package warehouse

import (
	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Warehouse is a physical storage site owned by an organization
type Warehouse struct {
	shared.OrgEntity
	Name                  string `gorm:"type:varchar(120);not null"`
	Location              string `gorm:"type:varchar(255)"`
	Capacity              *int64
	TemperatureControlled bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a warehouse for an organization
func NewWarehouse(organizationID uuid.UUID, name, location string, capacity *int64, temperatureControlled bool) (*Warehouse, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	return &Warehouse{
		OrgEntity:             shared.NewOrgEntity(organizationID),
		Name:                  name,
		Location:              location,
		Capacity:              capacity,
		TemperatureControlled: temperatureControlled,
	}, nil
}

// WarehouseLocation is an addressable slot (rack/shelf) inside a warehouse
type WarehouseLocation struct {
	shared.BaseEntity
	WarehouseID  uuid.UUID `gorm:"type:uuid;not null;index"`
	LocationCode string    `gorm:"type:varchar(64);not null"`
	RackNumber   *int
	ShelfNumber  *int
	Capacity     *int64
}

// TableName returns the table name for GORM
func (WarehouseLocation) TableName() string {
	return "warehouse_locations"
}

// NewWarehouseLocation creates a location within a warehouse
func NewWarehouseLocation(warehouseID uuid.UUID, locationCode string, rackNumber, shelfNumber *int, capacity *int64) (*WarehouseLocation, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if locationCode == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION_CODE", "Location code cannot be empty")
	}
	return &WarehouseLocation{
		BaseEntity:   shared.NewBaseEntity(),
		WarehouseID:  warehouseID,
		LocationCode: locationCode,
		RackNumber:   rackNumber,
		ShelfNumber:  shelfNumber,
		Capacity:     capacity,
	}, nil
}
