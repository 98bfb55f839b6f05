package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/user/filmorate/internal/model"
)

// memoryState 内存后端的共享状态，供四个仓库实现复用。
// 与数据库实现满足同一组接口，排行、好友交集等算法可以脱库测试。
type memoryState struct {
	mu         sync.RWMutex
	films      map[int]*model.Film
	users      map[int]*model.User
	genres     map[int]model.Genre
	ratings    map[int]model.Mpa
	likes      map[int]map[int]bool // filmID -> 点赞用户集合
	friends    map[int]map[int]bool // userID -> 出边目标集合
	nextFilmID int
	nextUserID int
}

// NewMemoryRepositories 创建内存仓库集合，参照数据与数据库种子一致
func NewMemoryRepositories() *Repositories {
	s := &memoryState{
		films:      make(map[int]*model.Film),
		users:      make(map[int]*model.User),
		genres:     make(map[int]model.Genre),
		ratings:    make(map[int]model.Mpa),
		likes:      make(map[int]map[int]bool),
		friends:    make(map[int]map[int]bool),
		nextFilmID: 1,
		nextUserID: 1,
	}
	for _, m := range []model.Mpa{
		{ID: 1, Name: "G"}, {ID: 2, Name: "PG"}, {ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"}, {ID: 5, Name: "NC-17"},
	} {
		s.ratings[m.ID] = m
	}
	for _, g := range []model.Genre{
		{ID: 1, Name: "Comedy"}, {ID: 2, Name: "Drama"}, {ID: 3, Name: "Animation"},
		{ID: 4, Name: "Thriller"}, {ID: 5, Name: "Documentary"}, {ID: 6, Name: "Action"},
	} {
		s.genres[g.ID] = g
	}
	return &Repositories{
		Film:  &MemoryFilmStorage{s: s},
		User:  &MemoryUserStorage{s: s},
		Genre: &MemoryGenreStorage{s: s},
		Mpa:   &MemoryMpaStorage{s: s},
	}
}

// hydrateFilm 返回带完整关联的副本，类型按 id 升序
func (s *memoryState) hydrateFilm(f *model.Film) *model.Film {
	out := *f
	if out.MpaID != nil {
		if m, ok := s.ratings[*out.MpaID]; ok {
			out.Mpa = &m
		}
	}
	genres := make([]model.Genre, 0, len(f.Genres))
	for _, g := range f.Genres {
		if full, ok := s.genres[g.ID]; ok {
			genres = append(genres, full)
		}
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	out.Genres = genres
	return &out
}

// dedupGenres 去重并校验每个类型都存在
func (s *memoryState) dedupGenres(genres []model.Genre) ([]model.Genre, error) {
	seen := make(map[int]bool, len(genres))
	unique := make([]model.Genre, 0, len(genres))
	for _, g := range genres {
		if seen[g.ID] {
			continue
		}
		if _, ok := s.genres[g.ID]; !ok {
			return nil, fmt.Errorf("类型 %d: %w", g.ID, ErrNotFound)
		}
		seen[g.ID] = true
		unique = append(unique, model.Genre{ID: g.ID})
	}
	return unique, nil
}

func (s *memoryState) likeCount(filmID int) int {
	return len(s.likes[filmID])
}

// MemoryFilmStorage FilmStorage 的内存实现
type MemoryFilmStorage struct {
	s *memoryState
}

func (r *MemoryFilmStorage) Add(film *model.Film) (*model.Film, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *film
	if film.Mpa != nil {
		if _, ok := r.s.ratings[film.Mpa.ID]; !ok {
			return nil, fmt.Errorf("分级 %d: %w", film.Mpa.ID, ErrNotFound)
		}
		id := film.Mpa.ID
		stored.MpaID = &id
	}
	genres, err := r.s.dedupGenres(film.Genres)
	if err != nil {
		return nil, err
	}
	stored.Genres = genres
	stored.Mpa = nil

	stored.ID = r.s.nextFilmID
	r.s.nextFilmID++
	r.s.films[stored.ID] = &stored
	film.ID = stored.ID
	return r.s.hydrateFilm(&stored), nil
}

func (r *MemoryFilmStorage) FindAll() ([]model.Film, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	films := make([]model.Film, 0, len(r.s.films))
	for _, f := range r.s.films {
		films = append(films, *r.s.hydrateFilm(f))
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (r *MemoryFilmStorage) Update(film *model.Film) (*model.Film, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.films[film.ID]
	if !ok {
		return nil, fmt.Errorf("影片 %d: %w", film.ID, ErrNotFound)
	}

	existing.Name = film.Name
	existing.Description = film.Description
	existing.ReleaseDate = film.ReleaseDate
	existing.Duration = film.Duration

	if film.Mpa != nil {
		if _, ok := r.s.ratings[film.Mpa.ID]; !ok {
			return nil, fmt.Errorf("分级 %d: %w", film.Mpa.ID, ErrNotFound)
		}
		id := film.Mpa.ID
		existing.MpaID = &id
	}
	if film.Genres != nil {
		genres, err := r.s.dedupGenres(film.Genres)
		if err != nil {
			return nil, err
		}
		existing.Genres = genres
	}
	return r.s.hydrateFilm(existing), nil
}

func (r *MemoryFilmStorage) GetByID(id int) (*model.Film, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.films[id]
	if !ok {
		return nil, fmt.Errorf("影片 %d: %w", id, ErrNotFound)
	}
	return r.s.hydrateFilm(f), nil
}

func (r *MemoryFilmStorage) DeleteByID(id int) (*model.Film, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.films[id]
	if !ok {
		return nil, fmt.Errorf("影片 %d: %w", id, ErrNotFound)
	}
	hydrated := r.s.hydrateFilm(f)
	delete(r.s.films, id)
	delete(r.s.likes, id)
	return hydrated, nil
}

func (r *MemoryFilmStorage) AddLike(filmID, userID int) (*model.Film, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, err := r.checkPair(filmID, userID)
	if err != nil {
		return nil, err
	}
	if r.s.likes[filmID] == nil {
		r.s.likes[filmID] = make(map[int]bool)
	}
	r.s.likes[filmID][userID] = true
	return r.s.hydrateFilm(f), nil
}

func (r *MemoryFilmStorage) RemoveLike(filmID, userID int) (*model.Film, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, err := r.checkPair(filmID, userID)
	if err != nil {
		return nil, err
	}
	delete(r.s.likes[filmID], userID)
	return r.s.hydrateFilm(f), nil
}

func (r *MemoryFilmStorage) GetBestFilms(count int) ([]model.Film, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.rankLocked(count, func(f *model.Film) bool { return true }), nil
}

func (r *MemoryFilmStorage) GetPopularByGenre(genreID, count int) ([]model.Film, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.rankLocked(count, func(f *model.Film) bool {
		for _, g := range f.Genres {
			if g.ID == genreID {
				return true
			}
		}
		return false
	}), nil
}

func (r *MemoryFilmStorage) GetPopularByYear(year int) ([]model.Film, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.rankLocked(0, func(f *model.Film) bool {
		return f.ReleaseDate.Year() == year
	}), nil
}

// rankLocked 按点赞数降序排序，count <= 0 表示不截断；须持锁调用
func (r *MemoryFilmStorage) rankLocked(count int, keep func(*model.Film) bool) []model.Film {
	films := make([]model.Film, 0, len(r.s.films))
	for _, f := range r.s.films {
		if keep(f) {
			films = append(films, *r.s.hydrateFilm(f))
		}
	}
	sort.SliceStable(films, func(i, j int) bool {
		ci, cj := r.s.likeCount(films[i].ID), r.s.likeCount(films[j].ID)
		if ci != cj {
			return ci > cj
		}
		return films[i].ID < films[j].ID
	})
	if count > 0 && len(films) > count {
		films = films[:count]
	}
	return films
}

func (r *MemoryFilmStorage) checkPair(filmID, userID int) (*model.Film, error) {
	f, ok := r.s.films[filmID]
	if !ok {
		return nil, fmt.Errorf("影片 %d 或用户 %d: %w", filmID, userID, ErrNotFound)
	}
	if _, ok := r.s.users[userID]; !ok {
		return nil, fmt.Errorf("影片 %d 或用户 %d: %w", filmID, userID, ErrNotFound)
	}
	return f, nil
}

// MemoryUserStorage UserStorage 的内存实现
type MemoryUserStorage struct {
	s *memoryState
}

func (r *MemoryUserStorage) Create(user *model.User) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *user
	stored.ID = r.s.nextUserID
	r.s.nextUserID++
	r.s.users[stored.ID] = &stored
	user.ID = stored.ID
	out := stored
	return &out, nil
}

func (r *MemoryUserStorage) FindAll() ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MemoryUserStorage) Update(user *model.User) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return nil, fmt.Errorf("用户 %d: %w", user.ID, ErrNotFound)
	}
	existing.Email = user.Email
	existing.Login = user.Login
	existing.Name = user.Name
	existing.Birthday = user.Birthday
	out := *existing
	return &out, nil
}

func (r *MemoryUserStorage) GetByID(id int) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.getLocked(id)
}

func (r *MemoryUserStorage) DeleteByID(id int) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("用户 %d: %w", id, ErrNotFound)
	}
	out := *u
	delete(r.s.users, id)
	delete(r.s.friends, id)
	for _, adj := range r.s.friends {
		delete(adj, id)
	}
	for _, likers := range r.s.likes {
		delete(likers, id)
	}
	return &out, nil
}

func (r *MemoryUserStorage) AddFriendship(userID, friendID int) ([]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkPairLocked(userID, friendID); err != nil {
		return nil, err
	}
	if r.s.friends[userID] == nil {
		r.s.friends[userID] = make(map[int]bool)
	}
	r.s.friends[userID][friendID] = true
	return r.adjacencyLocked(userID), nil
}

func (r *MemoryUserStorage) RemoveFriendship(userID, friendID int) ([]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkPairLocked(userID, friendID); err != nil {
		return nil, err
	}
	delete(r.s.friends[userID], friendID)
	return r.adjacencyLocked(userID), nil
}

func (r *MemoryUserStorage) GetFriendsByID(id int) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.users[id]; !ok {
		return nil, fmt.Errorf("用户 %d: %w", id, ErrNotFound)
	}
	friends := []model.User{}
	for fid := range r.s.friends[id] {
		if u, ok := r.s.users[fid]; ok {
			friends = append(friends, *u)
		}
	}
	sort.Slice(friends, func(i, j int) bool { return friends[i].ID < friends[j].ID })
	return friends, nil
}

// GetSharedFriends 两个出边集合按 id 求真交集
func (r *MemoryUserStorage) GetSharedFriends(userID, otherID int) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.checkPairLocked(userID, otherID); err != nil {
		return nil, err
	}
	shared := []model.User{}
	for fid := range r.s.friends[userID] {
		if r.s.friends[otherID][fid] {
			if u, ok := r.s.users[fid]; ok {
				shared = append(shared, *u)
			}
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i].ID < shared[j].ID })
	return shared, nil
}

func (r *MemoryUserStorage) getLocked(id int) (*model.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("用户 %d: %w", id, ErrNotFound)
	}
	out := *u
	return &out, nil
}

func (r *MemoryUserStorage) adjacencyLocked(userID int) []int {
	ids := []int{}
	for fid := range r.s.friends[userID] {
		ids = append(ids, fid)
	}
	sort.Ints(ids)
	return ids
}

func (r *MemoryUserStorage) checkPairLocked(a, b int) error {
	if _, ok := r.s.users[a]; !ok {
		return fmt.Errorf("用户 %d: %w", a, ErrNotFound)
	}
	if _, ok := r.s.users[b]; !ok {
		return fmt.Errorf("用户 %d: %w", b, ErrNotFound)
	}
	return nil
}

// MemoryGenreStorage GenreStorage 的内存实现
type MemoryGenreStorage struct {
	s *memoryState
}

func (r *MemoryGenreStorage) FindAll() ([]model.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	genres := make([]model.Genre, 0, len(r.s.genres))
	for _, g := range r.s.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (r *MemoryGenreStorage) GetByID(id int) (*model.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.genres[id]
	if !ok {
		return nil, fmt.Errorf("类型 %d: %w", id, ErrNotFound)
	}
	return &g, nil
}

// MemoryMpaStorage MpaStorage 的内存实现
type MemoryMpaStorage struct {
	s *memoryState
}

func (r *MemoryMpaStorage) FindAll() ([]model.Mpa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ratings := make([]model.Mpa, 0, len(r.s.ratings))
	for _, m := range r.s.ratings {
		ratings = append(ratings, m)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].ID < ratings[j].ID })
	return ratings, nil
}

func (r *MemoryMpaStorage) GetByID(id int) (*model.Mpa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.ratings[id]
	if !ok {
		return nil, fmt.Errorf("分级 %d: %w", id, ErrNotFound)
	}
	return &m, nil
}
