package models

import "time"

// Building belongs to one company.
type Building struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"companyId"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// Unit is a flat, office or garage inside a building.
type Unit struct {
	ID         int64     `json:"id"`
	BuildingID int64     `json:"buildingId"`
	Numero     string    `json:"numero"`
	CreatedAt  time.Time `json:"createdAt"`
}

// InventorySnapshot is the read-only view of a company's buildings and units
// taken once per import.
type InventorySnapshot struct {
	CompanyID int64
	Buildings []Building
	Units     []Unit
}
