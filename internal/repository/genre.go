package repository

import (
	"errors"
	"fmt"

	"github.com/user/filmorate/internal/model"
	"gorm.io/gorm"
)

// GenreRepository 类型参照表，对外只读
type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) FindAll() ([]model.Genre, error) {
	var genres []model.Genre
	err := r.db.Order("id ASC").Find(&genres).Error
	return genres, err
}

func (r *GenreRepository) GetByID(id int) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.First(&genre, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("类型 %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}
