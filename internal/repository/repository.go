package repository

import (
	"errors"

	"github.com/user/filmorate/internal/model"
	"gorm.io/gorm"
)

// ErrNotFound 按 id 找不到记录
var ErrNotFound = errors.New("记录不存在")

// FilmStorage 影片存储接口
type FilmStorage interface {
	Add(film *model.Film) (*model.Film, error)
	FindAll() ([]model.Film, error)
	Update(film *model.Film) (*model.Film, error)
	GetByID(id int) (*model.Film, error)
	DeleteByID(id int) (*model.Film, error)
	AddLike(filmID, userID int) (*model.Film, error)
	RemoveLike(filmID, userID int) (*model.Film, error)
	GetBestFilms(count int) ([]model.Film, error)
	GetPopularByGenre(genreID, count int) ([]model.Film, error)
	GetPopularByYear(year int) ([]model.Film, error)
}

// UserStorage 用户存储接口
type UserStorage interface {
	Create(user *model.User) (*model.User, error)
	FindAll() ([]model.User, error)
	Update(user *model.User) (*model.User, error)
	GetByID(id int) (*model.User, error)
	DeleteByID(id int) (*model.User, error)
	AddFriendship(userID, friendID int) ([]int, error)
	RemoveFriendship(userID, friendID int) ([]int, error)
	GetFriendsByID(id int) ([]model.User, error)
	GetSharedFriends(userID, otherID int) ([]model.User, error)
}

// GenreStorage 类型参照表，只读
type GenreStorage interface {
	FindAll() ([]model.Genre, error)
	GetByID(id int) (*model.Genre, error)
}

// MpaStorage 分级参照表，只读
type MpaStorage interface {
	FindAll() ([]model.Mpa, error)
	GetByID(id int) (*model.Mpa, error)
}

// Repositories 仓库集合
type Repositories struct {
	Film  FilmStorage
	User  UserStorage
	Genre GenreStorage
	Mpa   MpaStorage
}

// NewRepositories 创建基于数据库的仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Film:  NewFilmRepository(db),
		User:  NewUserRepository(db),
		Genre: NewGenreRepository(db),
		Mpa:   NewMpaRepository(db),
	}
}
