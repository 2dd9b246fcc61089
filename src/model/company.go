package model

import (
	"database/sql"
	"errors"
	"time"
)

// Company is a tenant: an administration firm and everything it manages.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func CreateCompany(db *sql.DB, name string) (*Company, error) {
	c := &Company{Name: name, CreatedAt: time.Now()}
	res, err := db.Exec(`INSERT INTO companies (name, created_at) VALUES (?, ?)`, c.Name, c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return c, nil
}

func GetCompanyByID(db *sql.DB, id int64) (*Company, error) {
	var c Company
	err := db.QueryRow(`SELECT id, name, created_at FROM companies WHERE id = ?`, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
