package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/user/filmorate/internal/model"
	"github.com/user/filmorate/internal/repository"
)

func TestFilmService_PopularCountDefaulting(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewFilmService(repos.Film, 10)

	for i := 0; i < 15; i++ {
		_, err := svc.AddFilm(&model.Film{
			Name:        fmt.Sprintf("影片 %d", i),
			Description: "批量数据",
			ReleaseDate: model.NewDate(2000+i, time.June, 1),
			Duration:    90,
		})
		if err != nil {
			t.Fatalf("新增影片失败: %v", err)
		}
	}

	// count 未传时取配置默认值
	films, err := svc.GetPopularFilms(0)
	if err != nil {
		t.Fatalf("排行查询失败: %v", err)
	}
	if len(films) != 10 {
		t.Errorf("默认应返回 10 部，实际 %d", len(films))
	}

	// 显式 count 优先
	films, err = svc.GetPopularFilms(3)
	if err != nil {
		t.Fatalf("排行查询失败: %v", err)
	}
	if len(films) != 3 {
		t.Errorf("count=3 应返回 3 部，实际 %d", len(films))
	}
}
