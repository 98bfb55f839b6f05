package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FindAllGenres 类型参照表
func (h *Handler) FindAllGenres(c *gin.Context) {
	genres, err := h.Repos.Genre.FindAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

// GetGenreByID 类型详情
func (h *Handler) GetGenreByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	genre, err := h.Repos.Genre.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}

// FindAllMpa 分级参照表
func (h *Handler) FindAllMpa(c *gin.Context) {
	ratings, err := h.Repos.Mpa.FindAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// GetMpaByID 分级详情
func (h *Handler) GetMpaByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	mpa, err := h.Repos.Mpa.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mpa)
}
