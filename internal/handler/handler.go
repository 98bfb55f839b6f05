package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/filmorate/internal/config"
	"github.com/user/filmorate/internal/repository"
	"github.com/user/filmorate/internal/service"
	"github.com/user/filmorate/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Films  *service.FilmService
	Users  *service.UserService
	Repos  *repository.Repositories
	Config *config.Config
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Films:  service.NewFilmService(repos.Film, cfg.PopularDefaultCount),
		Users:  service.NewUserService(repos.User),
		Repos:  repos,
		Config: cfg,
	}
}

// respondError 统一错误映射：找不到记录 404，其余 500
func respondError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.NotFound(c, err.Error())
		return
	}
	log.Printf("存储层错误: %v", err)
	utils.InternalServerError(c, "")
}

// pathID 解析路径中的整数参数
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		utils.BadRequest(c, "参数 "+name+" 必须是整数")
		return 0, false
	}
	return id, true
}

// queryCount 解析 count 查询参数，未传返回 0 交给服务层取默认值
func queryCount(c *gin.Context) (int, bool) {
	raw := c.Query("count")
	if raw == "" {
		return 0, true
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		utils.BadRequest(c, "参数 count 必须是整数")
		return 0, false
	}
	return count, true
}
