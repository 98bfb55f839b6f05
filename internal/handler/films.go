package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/filmorate/internal/model"
	"github.com/user/filmorate/internal/utils"
)

// FindAllFilms 影片列表
func (h *Handler) FindAllFilms(c *gin.Context) {
	films, err := h.Films.FindAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// AddFilm 新增影片
func (h *Handler) AddFilm(c *gin.Context) {
	var film model.Film
	if err := c.ShouldBindJSON(&film); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	created, err := h.Films.AddFilm(&film)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// UpdateFilm 更新影片
func (h *Handler) UpdateFilm(c *gin.Context) {
	var film model.Film
	if err := c.ShouldBindJSON(&film); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	updated, err := h.Films.UpdateFilm(&film)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetFilmByID 影片详情
func (h *Handler) GetFilmByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	film, err := h.Films.GetFilmByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, film)
}

// DeleteFilm 删除影片
func (h *Handler) DeleteFilm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	film, err := h.Films.DeleteByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, film)
}

// PutLike 点赞
func (h *Handler) PutLike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	film, err := h.Films.PutLike(id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, film)
}

// DeleteLike 取消点赞
func (h *Handler) DeleteLike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	film, err := h.Films.DeleteLike(id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, film)
}

// GetPopularFilms 点赞排行
func (h *Handler) GetPopularFilms(c *gin.Context) {
	count, ok := queryCount(c)
	if !ok {
		return
	}
	films, err := h.Films.GetPopularFilms(count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// GetPopularByGenre 按类型的点赞排行
func (h *Handler) GetPopularByGenre(c *gin.Context) {
	genreID, ok := pathID(c, "genreId")
	if !ok {
		return
	}
	count, ok := queryCount(c)
	if !ok {
		return
	}
	films, err := h.Films.GetPopularByGenre(genreID, count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// GetPopularByYear 按上映年份的点赞排行
func (h *Handler) GetPopularByYear(c *gin.Context) {
	year, ok := pathID(c, "year")
	if !ok {
		return
	}
	films, err := h.Films.GetPopularByYear(year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}
