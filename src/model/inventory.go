package model

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/username/propledger/backend/src/models"
)

func CreateBuilding(db *sql.DB, b *models.Building) error {
	b.CreatedAt = time.Now()
	res, err := db.Exec(`INSERT INTO buildings (company_id, name, address, created_at) VALUES (?, ?, ?, ?)`,
		b.CompanyID, b.Name, b.Address, b.CreatedAt)
	if err != nil {
		return err
	}
	b.ID, err = res.LastInsertId()
	return err
}

// ListBuildings returns a company's buildings in creation order. The entity
// resolver relies on this order being stable.
func ListBuildings(db *sql.DB, companyID int64) ([]models.Building, error) {
	rows, err := db.Query(`SELECT id, company_id, name, address, created_at FROM buildings WHERE company_id = ? ORDER BY id ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("error querying buildings for company %d: %w", companyID, err)
	}
	defer rows.Close()

	buildings := []models.Building{}
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.CreatedAt); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

// GetBuilding returns ErrNotFound when the building belongs to another company.
func GetBuilding(db *sql.DB, companyID, id int64) (*models.Building, error) {
	var b models.Building
	err := db.QueryRow(`SELECT id, company_id, name, address, created_at FROM buildings WHERE id = ? AND company_id = ?`, id, companyID).
		Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func CreateUnit(db *sql.DB, u *models.Unit) error {
	u.CreatedAt = time.Now()
	res, err := db.Exec(`INSERT INTO units (building_id, numero, created_at) VALUES (?, ?, ?)`, u.BuildingID, u.Numero, u.CreatedAt)
	if err != nil {
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}

func ListUnits(db *sql.DB, buildingID int64) ([]models.Unit, error) {
	rows, err := db.Query(`SELECT id, building_id, numero, created_at FROM units WHERE building_id = ? ORDER BY id ASC`, buildingID)
	if err != nil {
		return nil, fmt.Errorf("error querying units for building %d: %w", buildingID, err)
	}
	defer rows.Close()
	return scanUnits(rows)
}

// GetInventorySnapshot loads every building and unit of a company.
func GetInventorySnapshot(db *sql.DB, companyID int64) (models.InventorySnapshot, error) {
	snapshot := models.InventorySnapshot{CompanyID: companyID}

	buildings, err := ListBuildings(db, companyID)
	if err != nil {
		return snapshot, err
	}
	snapshot.Buildings = buildings

	rows, err := db.Query(`
		SELECT u.id, u.building_id, u.numero, u.created_at
		FROM units u
		JOIN buildings b ON b.id = u.building_id
		WHERE b.company_id = ?
		ORDER BY u.id ASC`, companyID)
	if err != nil {
		return snapshot, fmt.Errorf("error querying units for company %d: %w", companyID, err)
	}
	defer rows.Close()

	snapshot.Units, err = scanUnits(rows)
	return snapshot, err
}

func scanUnits(rows *sql.Rows) ([]models.Unit, error) {
	units := []models.Unit{}
	for rows.Next() {
		var u models.Unit
		if err := rows.Scan(&u.ID, &u.BuildingID, &u.Numero, &u.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}
