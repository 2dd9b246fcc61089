// backend/src/processors/entity_resolver.go
package processors

import (
	"strings"

	"github.com/username/propledger/backend/src/models"
	"github.com/username/propledger/backend/src/utils"
)

type resolvedBuilding struct {
	id   int64
	name string
}

type resolvedUnit struct {
	id  int64
	key string
}

// entityResolverImpl works over an immutable snapshot. Buildings are tried in
// snapshot order, so the first containing name wins.
type entityResolverImpl struct {
	buildings []resolvedBuilding
	units     map[int64][]resolvedUnit
}

// NewEntityResolver indexes snapshot once; the snapshot is not retained.
func NewEntityResolver(snapshot models.InventorySnapshot) EntityResolver {
	r := &entityResolverImpl{
		buildings: make([]resolvedBuilding, 0, len(snapshot.Buildings)),
		units:     make(map[int64][]resolvedUnit),
	}
	for _, b := range snapshot.Buildings {
		name := utils.NormalizeText(b.Name)
		if name == "" {
			continue
		}
		r.buildings = append(r.buildings, resolvedBuilding{id: b.ID, name: name})
	}
	for _, u := range snapshot.Units {
		key := unitKey(u.Numero)
		if key == "" {
			continue
		}
		r.units[u.BuildingID] = append(r.units[u.BuildingID], resolvedUnit{id: u.ID, key: key})
	}
	return r
}

// unitKey collapses "1º A", "1ª-A" and "1A" to the same key.
func unitKey(s string) string {
	s = strings.NewReplacer("º", "", "ª", "", "°", "").Replace(s)
	return utils.NormalizeKey(s)
}

// ResolveBuilding matches when either normalized name contains the other.
func (r *entityResolverImpl) ResolveBuilding(ref string) (int64, bool) {
	needle := utils.NormalizeText(ref)
	if needle == "" {
		return 0, false
	}
	for _, b := range r.buildings {
		if strings.Contains(b.name, needle) || strings.Contains(needle, b.name) {
			return b.id, true
		}
	}
	return 0, false
}

// ResolveUnit looks only inside buildingID: exact number first, then containment.
func (r *entityResolverImpl) ResolveUnit(buildingID int64, ref string) (int64, bool) {
	key := unitKey(ref)
	if key == "" {
		return 0, false
	}
	candidates := r.units[buildingID]
	for _, u := range candidates {
		if u.key == key {
			return u.id, true
		}
	}
	for _, u := range candidates {
		if strings.Contains(u.key, key) || strings.Contains(key, u.key) {
			return u.id, true
		}
	}
	return 0, false
}

// Resolve sets BuildingID and UnitID on tx when its references match.
// Units are never searched without a resolved building.
func (r *entityResolverImpl) Resolve(tx *models.ParsedTransaction) {
	buildingID, ok := r.ResolveBuilding(tx.BuildingRef)
	if !ok {
		return
	}
	tx.BuildingID = &buildingID

	if unitID, ok := r.ResolveUnit(buildingID, tx.UnitRef); ok {
		tx.UnitID = &unitID
	}
}
