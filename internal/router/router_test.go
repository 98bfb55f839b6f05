package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/user/filmorate/internal/config"
	"github.com/user/filmorate/internal/handler"
	"github.com/user/filmorate/internal/model"
	"github.com/user/filmorate/internal/repository"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := model.RegisterValidations(); err != nil {
		t.Fatalf("注册校验规则失败: %v", err)
	}
	repos := repository.NewMemoryRepositories()
	cfg := &config.Config{Env: "test", PopularDefaultCount: 10}
	r := gin.New()
	RegisterRoutes(r, handler.NewHandler(repos, cfg))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("序列化请求失败: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeFilm(t *testing.T, w *httptest.ResponseRecorder) model.Film {
	t.Helper()
	var film model.Film
	if err := json.Unmarshal(w.Body.Bytes(), &film); err != nil {
		t.Fatalf("解析响应失败: %v (%s)", err, w.Body.String())
	}
	return film
}

func TestMatrixScenario(t *testing.T) {
	r := newTestServer(t)

	// 创建影片并挂载分级、类型
	w := doJSON(t, r, http.MethodPost, "/films", map[string]interface{}{
		"name":        "Matrix",
		"description": "A computer hacker learns the truth",
		"releaseDate": "1999-03-31",
		"duration":    136,
		"mpa":         map[string]int{"id": 4},
		"genres":      []map[string]int{{"id": 6}, {"id": 4}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("创建影片失败: %d %s", w.Code, w.Body.String())
	}
	matrix := decodeFilm(t, w)
	if matrix.ID == 0 {
		t.Fatal("创建应返回生成的 id")
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/films/%d", matrix.ID), nil)
	got := decodeFilm(t, w)
	if got.Mpa == nil || got.Mpa.Name != "R" {
		t.Errorf("分级应为 R: %+v", got.Mpa)
	}
	if len(got.Genres) != 2 {
		t.Errorf("应恰好挂载两个类型: %+v", got.Genres)
	}
	if got.ReleaseDate.Format("2006-01-02") != "1999-03-31" {
		t.Errorf("上映日期序列化错误: %v", got.ReleaseDate)
	}

	// 三个用户点赞
	for i := 1; i <= 3; i++ {
		w = doJSON(t, r, http.MethodPost, "/users", map[string]interface{}{
			"email":    fmt.Sprintf("user%d@example.com", i),
			"login":    fmt.Sprintf("user%d", i),
			"birthday": "1990-01-01",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("创建用户失败: %d %s", w.Code, w.Body.String())
		}
		w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/films/%d/like/%d", matrix.ID, i), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("点赞失败: %d %s", w.Code, w.Body.String())
		}
	}

	// 对照影片，一个赞
	w = doJSON(t, r, http.MethodPost, "/films", map[string]interface{}{
		"name":        "对照影片",
		"description": "一赞",
		"releaseDate": "2005-06-01",
		"duration":    90,
	})
	rival := decodeFilm(t, w)
	doJSON(t, r, http.MethodPut, fmt.Sprintf("/films/%d/like/1", rival.ID), nil)

	w = doJSON(t, r, http.MethodGet, "/films/popular?count=1", nil)
	var top []model.Film
	if err := json.Unmarshal(w.Body.Bytes(), &top); err != nil {
		t.Fatalf("解析排行失败: %v", err)
	}
	if len(top) != 1 || top[0].ID != matrix.ID {
		t.Fatalf("三赞影片应居榜首: %+v", top)
	}

	// 移除全部点赞后不再领先
	for i := 1; i <= 3; i++ {
		w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/films/%d/like/%d", matrix.ID, i), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("取消点赞失败: %d %s", w.Code, w.Body.String())
		}
	}
	w = doJSON(t, r, http.MethodGet, "/films/popular?count=1", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &top); err != nil {
		t.Fatalf("解析排行失败: %v", err)
	}
	if len(top) != 1 || top[0].ID != rival.ID {
		t.Errorf("取消点赞后对照影片应居榜首: %+v", top)
	}
}

func TestFilmValidation(t *testing.T) {
	r := newTestServer(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"空片名", map[string]interface{}{
			"name": "", "description": "x", "releaseDate": "2000-01-01", "duration": 90,
		}},
		{"超长简介", map[string]interface{}{
			"name": "x", "description": strings.Repeat("a", 201), "releaseDate": "2000-01-01", "duration": 90,
		}},
		{"上映日期早于电影诞生日", map[string]interface{}{
			"name": "x", "description": "x", "releaseDate": "1890-01-01", "duration": 90,
		}},
		{"时长非正", map[string]interface{}{
			"name": "x", "description": "x", "releaseDate": "2000-01-01", "duration": -5,
		}},
	}
	for _, tc := range cases {
		w := doJSON(t, r, http.MethodPost, "/films", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: 应返回 400，实际 %d", tc.name, w.Code)
		}
	}

	// 校验失败不应落库
	w := doJSON(t, r, http.MethodGet, "/films", nil)
	var films []model.Film
	json.Unmarshal(w.Body.Bytes(), &films)
	if len(films) != 0 {
		t.Errorf("校验失败的影片不应入库: %+v", films)
	}
}

func TestUserValidationAndNotFound(t *testing.T) {
	r := newTestServer(t)

	// 登录名含空格
	w := doJSON(t, r, http.MethodPost, "/users", map[string]interface{}{
		"email": "a@example.com", "login": "bad login", "birthday": "1990-01-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("含空格的登录名应返回 400，实际 %d", w.Code)
	}

	// 空显示名取登录名
	w = doJSON(t, r, http.MethodPost, "/users", map[string]interface{}{
		"email": "neo@example.com", "login": "neo", "birthday": "1990-01-01",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("创建用户失败: %d %s", w.Code, w.Body.String())
	}
	var user model.User
	json.Unmarshal(w.Body.Bytes(), &user)
	if user.Name != "neo" {
		t.Errorf("空显示名应取登录名，实际: %q", user.Name)
	}

	// 不存在的资源一律 404
	for _, path := range []string{"/films/999", "/users/999", "/genres/99", "/mpa/99"} {
		w = doJSON(t, r, http.MethodGet, path, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s 应返回 404，实际 %d", path, w.Code)
		}
	}
	w = doJSON(t, r, http.MethodPut, "/films/999/like/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("给不存在的影片点赞应返回 404，实际 %d", w.Code)
	}
}

func TestFriendEndpoints(t *testing.T) {
	r := newTestServer(t)

	for i := 1; i <= 3; i++ {
		doJSON(t, r, http.MethodPost, "/users", map[string]interface{}{
			"email":    fmt.Sprintf("f%d@example.com", i),
			"login":    fmt.Sprintf("f%d", i),
			"birthday": "1990-01-01",
		})
	}

	// 1 和 2 都加 3 为好友
	w := doJSON(t, r, http.MethodPut, "/users/1/friends/3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("添加好友失败: %d %s", w.Code, w.Body.String())
	}
	var ids []int
	json.Unmarshal(w.Body.Bytes(), &ids)
	if len(ids) != 1 || ids[0] != 3 {
		t.Errorf("邻接表错误: %v", ids)
	}
	doJSON(t, r, http.MethodPut, "/users/2/friends/3", nil)

	w = doJSON(t, r, http.MethodGet, "/users/1/friends/common/2", nil)
	var shared []model.User
	json.Unmarshal(w.Body.Bytes(), &shared)
	if len(shared) != 1 || shared[0].ID != 3 {
		t.Errorf("共同好友应为用户 3: %+v", shared)
	}

	w = doJSON(t, r, http.MethodDelete, "/users/1/friends/3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("删除好友失败: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/users/1/friends", nil)
	var friends []model.User
	json.Unmarshal(w.Body.Bytes(), &friends)
	if len(friends) != 0 {
		t.Errorf("删除后好友列表应为空: %+v", friends)
	}
}
