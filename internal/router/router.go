package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/filmorate/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	films := r.Group("/films")
	{
		films.GET("", h.FindAllFilms)
		films.POST("", h.AddFilm)
		films.PUT("", h.UpdateFilm)
		films.GET("/popular", h.GetPopularFilms)
		films.GET("/popular_by_genre/:genreId", h.GetPopularByGenre)
		films.GET("/popular_by_year/:year", h.GetPopularByYear)
		films.GET("/:id", h.GetFilmByID)
		films.DELETE("/:id", h.DeleteFilm)
		films.PUT("/:id/like/:userId", h.PutLike)
		films.DELETE("/:id/like/:userId", h.DeleteLike)
	}

	users := r.Group("/users")
	{
		users.GET("", h.FindAllUsers)
		users.POST("", h.CreateUser)
		users.PUT("", h.UpdateUser)
		users.GET("/:id", h.GetUserByID)
		users.DELETE("/:id", h.DeleteUser)
		users.PUT("/:id/friends/:friendId", h.AddFriend)
		users.DELETE("/:id/friends/:friendId", h.RemoveFriend)
		users.GET("/:id/friends", h.GetFriends)
		users.GET("/:id/friends/common/:otherId", h.GetSharedFriends)
	}

	genres := r.Group("/genres")
	{
		genres.GET("", h.FindAllGenres)
		genres.GET("/:id", h.GetGenreByID)
	}

	mpa := r.Group("/mpa")
	{
		mpa.GET("", h.FindAllMpa)
		mpa.GET("/:id", h.GetMpaByID)
	}
}
