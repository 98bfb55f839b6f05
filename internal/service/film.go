package service

import (
	"github.com/user/filmorate/internal/model"
	"github.com/user/filmorate/internal/repository"
)

// FilmService 影片编排层：透传仓库，补默认参数
type FilmService struct {
	films        repository.FilmStorage
	defaultCount int // 排行默认条数，来自配置
}

func NewFilmService(films repository.FilmStorage, defaultCount int) *FilmService {
	return &FilmService{films: films, defaultCount: defaultCount}
}

func (s *FilmService) AddFilm(film *model.Film) (*model.Film, error) {
	return s.films.Add(film)
}

func (s *FilmService) FindAll() ([]model.Film, error) {
	return s.films.FindAll()
}

func (s *FilmService) UpdateFilm(film *model.Film) (*model.Film, error) {
	return s.films.Update(film)
}

func (s *FilmService) GetFilmByID(id int) (*model.Film, error) {
	return s.films.GetByID(id)
}

func (s *FilmService) DeleteByID(id int) (*model.Film, error) {
	return s.films.DeleteByID(id)
}

func (s *FilmService) PutLike(filmID, userID int) (*model.Film, error) {
	return s.films.AddLike(filmID, userID)
}

func (s *FilmService) DeleteLike(filmID, userID int) (*model.Film, error) {
	return s.films.RemoveLike(filmID, userID)
}

// GetPopularFilms count 未传（<= 0）时取配置的默认值
func (s *FilmService) GetPopularFilms(count int) ([]model.Film, error) {
	if count <= 0 {
		count = s.defaultCount
	}
	return s.films.GetBestFilms(count)
}

func (s *FilmService) GetPopularByGenre(genreID, count int) ([]model.Film, error) {
	if count <= 0 {
		count = s.defaultCount
	}
	return s.films.GetPopularByGenre(genreID, count)
}

func (s *FilmService) GetPopularByYear(year int) ([]model.Film, error) {
	return s.films.GetPopularByYear(year)
}
