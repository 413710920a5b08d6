package repository

import (
	"field-presence-backend/internal/model"

	"gorm.io/gorm"
)

type BranchRepository interface {
	GetByID(id uint) (*model.Branch, error)
	ListActive() ([]model.Branch, error)
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db}
}

func (r *branchRepository) GetByID(id uint) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.First(&branch, id).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) ListActive() ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.Where("is_active = ?", true).Find(&branches).Error
	return branches, err
}
