package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/user/filmorate/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户，id 由数据库生成
func (r *UserRepository) Create(user *model.User) (*model.User, error) {
	if err := r.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	log.Printf("用户 %d 已创建", user.ID)
	return user, nil
}

// FindAll 返回全部用户
func (r *UserRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

// Update 全量更新用户字段
func (r *UserRepository) Update(user *model.User) (*model.User, error) {
	if err := r.checkUser(user.ID); err != nil {
		return nil, err
	}
	err := r.db.Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"email":    user.Email,
		"login":    user.Login,
		"name":     user.Name,
		"birthday": user.Birthday,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("更新用户失败: %w", err)
	}
	log.Printf("用户 %d 已更新", user.ID)
	return r.GetByID(user.ID)
}

// GetByID 按 id 查找用户
func (r *UserRepository) GetByID(id int) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("用户 %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteByID 删除用户及其好友边和点赞，返回删除前的实体
func (r *UserRepository) DeleteByID(id int) (*model.User, error) {
	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&model.Friendship{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.FilmLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("用户 %d 已删除", id)
	return user, nil
}

// AddFriendship 添加有向好友边，返回发起方的邻接表
func (r *UserRepository) AddFriendship(userID, friendID int) ([]int, error) {
	if err := r.checkPair(userID, friendID); err != nil {
		return nil, err
	}
	edge := &model.Friendship{UserID: userID, FriendID: friendID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error; err != nil {
		return nil, fmt.Errorf("写入好友关系失败: %w", err)
	}
	return r.friendIDs(userID)
}

// RemoveFriendship 删除有向好友边，返回发起方的邻接表
func (r *UserRepository) RemoveFriendship(userID, friendID int) ([]int, error) {
	if err := r.checkPair(userID, friendID); err != nil {
		return nil, err
	}
	err := r.db.Where("user_id = ? AND friend_id = ?", userID, friendID).Delete(&model.Friendship{}).Error
	if err != nil {
		return nil, err
	}
	return r.friendIDs(userID)
}

// GetFriendsByID 返回出边可达的全部用户
func (r *UserRepository) GetFriendsByID(id int) ([]model.User, error) {
	if err := r.checkUser(id); err != nil {
		return nil, err
	}
	var friends []model.User
	err := r.db.
		Joins("JOIN friendships f ON f.friend_id = users.id").
		Where("f.user_id = ?", id).
		Order("users.id ASC").
		Find(&friends).Error
	return friends, err
}

// GetSharedFriends 两个邻接表按 id 求交集
func (r *UserRepository) GetSharedFriends(userID, otherID int) ([]model.User, error) {
	if err := r.checkPair(userID, otherID); err != nil {
		return nil, err
	}
	var shared []model.User
	err := r.db.Raw(`
		SELECT u.* FROM users u
		JOIN friendships f1 ON u.id = f1.friend_id AND f1.user_id = ?
		JOIN friendships f2 ON u.id = f2.friend_id AND f2.user_id = ?
		ORDER BY u.id ASC
	`, userID, otherID).Scan(&shared).Error
	return shared, err
}

// friendIDs 发起方出边的目标 id 列表
func (r *UserRepository) friendIDs(userID int) ([]int, error) {
	ids := []int{}
	err := r.db.Model(&model.Friendship{}).
		Where("user_id = ?", userID).
		Order("friend_id ASC").
		Pluck("friend_id", &ids).Error
	return ids, err
}

func (r *UserRepository) checkUser(id int) error {
	var count int64
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("用户 %d: %w", id, ErrNotFound)
	}
	return nil
}

// checkPair 关系操作前校验两端用户都存在
func (r *UserRepository) checkPair(a, b int) error {
	if err := r.checkUser(a); err != nil {
		return err
	}
	return r.checkUser(b)
}
