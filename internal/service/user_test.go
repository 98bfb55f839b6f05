package service

import (
	"testing"
	"time"

	"github.com/user/filmorate/internal/model"
	"github.com/user/filmorate/internal/repository"
)

func TestUserService_BlankNameFallsBackToLogin(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewUserService(repos.User)

	created, err := svc.Create(&model.User{
		Email:    "neo@example.com",
		Login:    "neo",
		Name:     "",
		Birthday: model.NewDate(1990, time.September, 13),
	})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	if created.Name != "neo" {
		t.Errorf("空显示名应取登录名，实际: %q", created.Name)
	}

	// 纯空白也视为空
	created2, err := svc.Create(&model.User{
		Email:    "trinity@example.com",
		Login:    "trinity",
		Name:     "   ",
		Birthday: model.NewDate(1992, time.May, 1),
	})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	if created2.Name != "trinity" {
		t.Errorf("空白显示名应取登录名，实际: %q", created2.Name)
	}

	// 更新时同样生效
	created.Name = ""
	updated, err := svc.Update(created)
	if err != nil {
		t.Fatalf("更新用户失败: %v", err)
	}
	if updated.Name != "neo" {
		t.Errorf("更新时空显示名应取登录名，实际: %q", updated.Name)
	}

	// 非空显示名保持不变
	created.Name = "Mr. Anderson"
	updated, err = svc.Update(created)
	if err != nil {
		t.Fatalf("更新用户失败: %v", err)
	}
	if updated.Name != "Mr. Anderson" {
		t.Errorf("非空显示名不应被覆盖，实际: %q", updated.Name)
	}
}
