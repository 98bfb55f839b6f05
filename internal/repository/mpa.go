package repository

import (
	"errors"
	"fmt"

	"github.com/user/filmorate/internal/model"
	"gorm.io/gorm"
)

// MpaRepository 分级参照表，对外只读
type MpaRepository struct {
	db *gorm.DB
}

func NewMpaRepository(db *gorm.DB) *MpaRepository {
	return &MpaRepository{db: db}
}

func (r *MpaRepository) FindAll() ([]model.Mpa, error) {
	var ratings []model.Mpa
	err := r.db.Order("id ASC").Find(&ratings).Error
	return ratings, err
}

func (r *MpaRepository) GetByID(id int) (*model.Mpa, error) {
	var mpa model.Mpa
	err := r.db.First(&mpa, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("分级 %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &mpa, nil
}
