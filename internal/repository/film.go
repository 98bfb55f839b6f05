package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/user/filmorate/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FilmRepository struct {
	db *gorm.DB
}

func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// withAssociations 读取路径统一预加载分级和类型
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Mpa").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genre.id ASC")
		})
}

// Add 新增影片，id 由数据库生成，关联行随影片在同一事务内写入
func (r *FilmRepository) Add(film *model.Film) (*model.Film, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if film.Mpa != nil {
			if err := checkMpa(tx, film.Mpa.ID); err != nil {
				return err
			}
			film.MpaID = &film.Mpa.ID
		}

		genres, err := resolveGenres(tx, film.Genres)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(film).Error; err != nil {
			return fmt.Errorf("写入影片失败: %w", err)
		}

		for _, g := range genres {
			if err := tx.Exec(
				"INSERT INTO film_genre (film_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				film.ID, g.ID,
			).Error; err != nil {
				return fmt.Errorf("写入影片类型失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("影片 %d 已创建", film.ID)
	return r.GetByID(film.ID)
}

// FindAll 返回全部影片，带完整关联
func (r *FilmRepository) FindAll() ([]model.Film, error) {
	var films []model.Film
	if err := withAssociations(r.db).Find(&films).Error; err != nil {
		return nil, err
	}
	normalizeFilms(films)
	return films, nil
}

// Update 全量更新字段；分级、类型按「先删后插」替换，整体在一个事务内
func (r *FilmRepository) Update(film *model.Film) (*model.Film, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Film
		if err := tx.First(&existing, film.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("影片 %d: %w", film.ID, ErrNotFound)
			}
			return err
		}

		updates := map[string]interface{}{
			"name":         film.Name,
			"description":  film.Description,
			"release_date": film.ReleaseDate,
			"duration":     film.Duration,
		}

		if film.Mpa != nil {
			if err := checkMpa(tx, film.Mpa.ID); err != nil {
				return err
			}
			updates["mpa_id"] = film.Mpa.ID
		}

		if err := tx.Model(&model.Film{}).Where("id = ?", film.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新影片失败: %w", err)
		}

		if film.Genres != nil {
			genres, err := resolveGenres(tx, film.Genres)
			if err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM film_genre WHERE film_id = ?", film.ID).Error; err != nil {
				return err
			}
			for _, g := range genres {
				if err := tx.Exec(
					"INSERT INTO film_genre (film_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
					film.ID, g.ID,
				).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("影片 %d 已更新", film.ID)
	return r.GetByID(film.ID)
}

// GetByID 按 id 查找影片，带完整关联
func (r *FilmRepository) GetByID(id int) (*model.Film, error) {
	var film model.Film
	err := withAssociations(r.db).First(&film, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("影片 %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if film.Genres == nil {
		film.Genres = []model.Genre{}
	}
	return &film, nil
}

// DeleteByID 删除影片及其关联行，返回删除前的实体
func (r *FilmRepository) DeleteByID(id int) (*model.Film, error) {
	film, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM film_genre WHERE film_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&model.FilmLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Film{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("影片 %d 已删除", id)
	return film, nil
}

// AddLike 点赞。影片和用户必须都存在，重复点赞不报错
func (r *FilmRepository) AddLike(filmID, userID int) (*model.Film, error) {
	if err := r.checkFilmAndUser(filmID, userID); err != nil {
		return nil, err
	}
	like := &model.FilmLike{FilmID: filmID, UserID: userID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
		return nil, fmt.Errorf("写入点赞失败: %w", err)
	}
	return r.GetByID(filmID)
}

// RemoveLike 取消点赞
func (r *FilmRepository) RemoveLike(filmID, userID int) (*model.Film, error) {
	if err := r.checkFilmAndUser(filmID, userID); err != nil {
		return nil, err
	}
	err := r.db.Where("film_id = ? AND user_id = ?", filmID, userID).Delete(&model.FilmLike{}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(filmID)
}

// GetBestFilms 按点赞数降序取前 count 部，零赞影片排在末尾
func (r *FilmRepository) GetBestFilms(count int) ([]model.Film, error) {
	return r.ranked(limited(r.db.Model(&model.Film{}), count))
}

// GetPopularByGenre 同排行，限定指定类型
func (r *FilmRepository) GetPopularByGenre(genreID, count int) ([]model.Film, error) {
	q := r.db.Model(&model.Film{}).
		Joins("JOIN film_genre fg ON fg.film_id = films.id").
		Where("fg.genre_id = ?", genreID)
	return r.ranked(limited(q, count))
}

// GetPopularByYear 同排行，限定上映年份
func (r *FilmRepository) GetPopularByYear(year int) ([]model.Film, error) {
	q := r.db.Model(&model.Film{}).
		Where("EXTRACT(YEAR FROM release_date) = ?", year)
	return r.ranked(q)
}

// limited count <= 0 表示不截断
func limited(q *gorm.DB, count int) *gorm.DB {
	if count > 0 {
		return q.Limit(count)
	}
	return q
}

// ranked 点赞数聚合下推给数据库
func (r *FilmRepository) ranked(q *gorm.DB) ([]model.Film, error) {
	var films []model.Film
	err := withAssociations(q).
		Select("films.*").
		Joins("LEFT JOIN films_likes fl ON films.id = fl.film_id").
		Group("films.id").
		Order("COUNT(fl.user_id) DESC").
		Find(&films).Error
	if err != nil {
		return nil, err
	}
	normalizeFilms(films)
	return films, nil
}

// checkFilmAndUser 点赞前校验两端都存在
func (r *FilmRepository) checkFilmAndUser(filmID, userID int) error {
	var filmCount, userCount int64
	if err := r.db.Model(&model.Film{}).Where("id = ?", filmID).Count(&filmCount).Error; err != nil {
		return err
	}
	if err := r.db.Model(&model.User{}).Where("id = ?", userID).Count(&userCount).Error; err != nil {
		return err
	}
	if filmCount == 0 || userCount == 0 {
		return fmt.Errorf("影片 %d 或用户 %d: %w", filmID, userID, ErrNotFound)
	}
	return nil
}

// checkMpa 分级必须指向已有参照行，写入影片不会创建分级
func checkMpa(tx *gorm.DB, id int) error {
	var count int64
	if err := tx.Model(&model.Mpa{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("分级 %d: %w", id, ErrNotFound)
	}
	return nil
}

// resolveGenres 去重并校验每个类型都存在
func resolveGenres(tx *gorm.DB, genres []model.Genre) ([]model.Genre, error) {
	seen := make(map[int]bool, len(genres))
	unique := make([]model.Genre, 0, len(genres))
	for _, g := range genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		unique = append(unique, g)
	}

	for _, g := range unique {
		var count int64
		if err := tx.Model(&model.Genre{}).Where("id = ?", g.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("类型 %d: %w", g.ID, ErrNotFound)
		}
	}
	return unique, nil
}

// normalizeFilms 空类型列表统一为 []，避免 JSON 输出 null
func normalizeFilms(films []model.Film) {
	for i := range films {
		if films[i].Genres == nil {
			films[i].Genres = []model.Genre{}
		}
	}
}
