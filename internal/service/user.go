package service

import (
	"strings"

	"github.com/user/filmorate/internal/model"
	"github.com/user/filmorate/internal/repository"
)

// UserService 用户编排层。唯一的领域规则：显示名为空时取登录名
type UserService struct {
	users repository.UserStorage
}

func NewUserService(users repository.UserStorage) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Create(user *model.User) (*model.User, error) {
	defaultName(user)
	return s.users.Create(user)
}

func (s *UserService) Update(user *model.User) (*model.User, error) {
	defaultName(user)
	return s.users.Update(user)
}

func (s *UserService) FindAll() ([]model.User, error) {
	return s.users.FindAll()
}

func (s *UserService) GetByID(id int) (*model.User, error) {
	return s.users.GetByID(id)
}

func (s *UserService) DeleteByID(id int) (*model.User, error) {
	return s.users.DeleteByID(id)
}

func (s *UserService) AddFriend(userID, friendID int) ([]int, error) {
	return s.users.AddFriendship(userID, friendID)
}

func (s *UserService) RemoveFriend(userID, friendID int) ([]int, error) {
	return s.users.RemoveFriendship(userID, friendID)
}

func (s *UserService) GetFriends(id int) ([]model.User, error) {
	return s.users.GetFriendsByID(id)
}

func (s *UserService) GetSharedFriends(userID, otherID int) ([]model.User, error) {
	return s.users.GetSharedFriends(userID, otherID)
}

func defaultName(user *model.User) {
	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.Login
	}
}
