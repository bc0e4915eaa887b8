package services

import (
	"github.com/geo-planner/api-go/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationService owns every row of the polymorphic location table. A single
// table serves all owner kinds, so the database cannot enforce that
// (OwnerKind, OwnerID) points at a live row or cascade deletes across the
// boundary; both guarantees live here. Owner delete paths must call DetachAll
// inside the same transaction that removes the owner, and Attach must run
// inside the transaction that creates the owner so the pair is all-or-nothing.
type LocationService struct {
	DB *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{DB: db}
}

// ownerExists resolves an owner reference against the table registered for
// its kind. Unknown kinds are invalid, not an error in the lookup itself.
func (ls *LocationService) ownerExists(tx *gorm.DB, kind string, ownerID uuid.UUID) (bool, error) {
	var count int64
	var err error
	switch kind {
	case models.OwnerKindActivity:
		err = tx.Model(&models.Activity{}).Where("id = ?", ownerID).Count(&count).Error
	case models.OwnerKindPost:
		err = tx.Model(&models.Post{}).Where("id = ?", ownerID).Count(&count).Error
	default:
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Attach creates a location tagged with (kind, ownerID). It runs on the given
// transaction handle so callers creating the owner in the same transaction
// get all-or-nothing semantics; pass ls.DB for standalone use. Returns
// ErrInvalidOwner when the kind is unregistered or the owner row is missing.
func (ls *LocationService) Attach(tx *gorm.DB, kind string, ownerID uuid.UUID, lat, lon float64) (*models.Location, error) {
	exists, err := ls.ownerExists(tx, kind, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrInvalidOwner
	}

	location := models.Location{
		OwnerKind: kind,
		OwnerID:   ownerID,
		Latitude:  lat,
		Longitude: lon,
	}
	if err := tx.Create(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// ListFor returns every location tagged to the owner. The model supports
// one-to-many even though current callers attach at most one.
func (ls *LocationService) ListFor(kind string, ownerID uuid.UUID) ([]models.Location, error) {
	var locations []models.Location
	err := ls.DB.Where("owner_kind = ? AND owner_id = ?", kind, ownerID).Find(&locations).Error
	return locations, err
}

// DetachAll deletes every location tagged to the owner. Owner delete paths
// must call this on their delete transaction before removing the owner row;
// there is no cascade across the polymorphic boundary.
func (ls *LocationService) DetachAll(tx *gorm.DB, kind string, ownerID uuid.UUID) error {
	return tx.Where("owner_kind = ? AND owner_id = ?", kind, ownerID).Delete(&models.Location{}).Error
}
