package model

// Film 影片模型
type Film struct {
	ID          int     `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required,max=200"`
	ReleaseDate Date    `json:"releaseDate" binding:"required,cinemaera" gorm:"type:date"`
	Duration    int     `json:"duration" binding:"required,gt=0"` // 时长（分钟）
	MpaID       *int    `json:"-"`
	Mpa         *Mpa    `json:"mpa,omitempty" gorm:"foreignKey:MpaID"`
	Genres      []Genre `json:"genres" gorm:"many2many:film_genre;"`
}

// User 用户模型
type User struct {
	ID       int    `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" binding:"required,email" gorm:"unique"`
	Login    string `json:"login" binding:"required,excludesall=0x20" gorm:"unique"`
	Name     string `json:"name"` // 为空时取 Login
	Birthday Date   `json:"birthday" binding:"required,pastdate" gorm:"type:date"`
}

// Genre 影片类型（只读参照表）
type Genre struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name"`
}

func (Genre) TableName() string { return "genre" }

// Mpa 分级（只读参照表）
type Mpa struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name"`
}

func (Mpa) TableName() string { return "mpa" }

// FilmLike 点赞关系，(film_id, user_id) 复合主键
type FilmLike struct {
	FilmID int `json:"film_id" gorm:"primaryKey"`
	UserID int `json:"user_id" gorm:"primaryKey"`
}

func (FilmLike) TableName() string { return "films_likes" }

// Friendship 好友关系，按有向边存储
type Friendship struct {
	UserID   int `json:"user_id" gorm:"primaryKey"`
	FriendID int `json:"friend_id" gorm:"primaryKey"`
}

func (Friendship) TableName() string { return "friendships" }
