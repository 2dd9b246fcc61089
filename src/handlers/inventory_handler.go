package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/propledger/backend/src/database"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/model"
	"github.com/username/propledger/backend/src/models"
	"github.com/username/propledger/backend/src/security/validation"
	"github.com/username/propledger/backend/src/utils"
)

type InventoryHandler struct{}

func NewInventoryHandler() *InventoryHandler {
	return &InventoryHandler{}
}

func (h *InventoryHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := companyScope(w, r)
	if !ok {
		return
	}
	buildings, err := model.ListBuildings(database.DB, companyID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list buildings", "companyID", companyID, "error", err)
		utils.SendJSONError(w, "Failed to retrieve buildings", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, buildings, http.StatusOK)
}

func (h *InventoryHandler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	user, companyID, ok := companyScope(w, r)
	if !ok {
		return
	}
	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid body", http.StatusBadRequest)
		return
	}

	contextID := fmt.Sprintf("user:%d", user.ID)
	name, err := validation.ValidateInventoryName(req.Name, "name", contextID, true)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	address, err := validation.ValidateInventoryName(req.Address, "address", contextID, false)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	b := &models.Building{CompanyID: companyID, Name: name, Address: address}
	if err := model.CreateBuilding(database.DB, b); err != nil {
		logger.FromContext(r.Context()).Error("Failed to create building", "companyID", companyID, "error", err)
		utils.SendJSONError(w, "Failed to create building", http.StatusInternalServerError)
		return
	}
	logger.FromContext(r.Context()).Info("Building created", "companyID", companyID, "buildingID", b.ID)
	utils.SendJSON(w, b, http.StatusCreated)
}

// buildingFromPath loads the {id} building, 404 when it belongs to another company.
func buildingFromPath(w http.ResponseWriter, r *http.Request, companyID int64) (*models.Building, bool) {
	id, err := validation.ValidateIDString(chi.URLParam(r, "id"), "buildingId")
	if err != nil || id == 0 {
		utils.SendJSONError(w, "Invalid building id", http.StatusBadRequest)
		return nil, false
	}
	b, err := model.GetBuilding(database.DB, companyID, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			utils.SendJSONError(w, "Building not found", http.StatusNotFound)
			return nil, false
		}
		logger.FromContext(r.Context()).Error("Failed to load building", "buildingID", id, "error", err)
		utils.SendJSONError(w, "Failed to load building", http.StatusInternalServerError)
		return nil, false
	}
	return b, true
}

func (h *InventoryHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := companyScope(w, r)
	if !ok {
		return
	}
	b, ok := buildingFromPath(w, r, companyID)
	if !ok {
		return
	}
	units, err := model.ListUnits(database.DB, b.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list units", "buildingID", b.ID, "error", err)
		utils.SendJSONError(w, "Failed to retrieve units", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, units, http.StatusOK)
}

func (h *InventoryHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	user, companyID, ok := companyScope(w, r)
	if !ok {
		return
	}
	b, ok := buildingFromPath(w, r, companyID)
	if !ok {
		return
	}
	var req struct {
		Numero string `json:"numero"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid body", http.StatusBadRequest)
		return
	}
	numero, err := validation.ValidateInventoryName(req.Numero, "numero", fmt.Sprintf("user:%d", user.ID), true)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	u := &models.Unit{BuildingID: b.ID, Numero: numero}
	if err := model.CreateUnit(database.DB, u); err != nil {
		logger.FromContext(r.Context()).Error("Failed to create unit", "buildingID", b.ID, "error", err)
		utils.SendJSONError(w, "Failed to create unit", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, u, http.StatusCreated)
}
