package repository

import (
	"fmt"

	"github.com/user/filmorate/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接并建表
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Mpa{},
		&model.Genre{},
		&model.Film{},
		&model.User{},
		&model.FilmLike{},
		&model.Friendship{},
	); err != nil {
		return nil, fmt.Errorf("建表失败: %w", err)
	}

	if err := seedReferenceData(db); err != nil {
		return nil, fmt.Errorf("初始化参照数据失败: %w", err)
	}

	return db, nil
}

// seedReferenceData 填充 genre / mpa 参照表（仅当为空时）
func seedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Mpa{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		ratings := []model.Mpa{
			{ID: 1, Name: "G"},
			{ID: 2, Name: "PG"},
			{ID: 3, Name: "PG-13"},
			{ID: 4, Name: "R"},
			{ID: 5, Name: "NC-17"},
		}
		if err := db.Create(&ratings).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&model.Genre{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		genres := []model.Genre{
			{ID: 1, Name: "Comedy"},
			{ID: 2, Name: "Drama"},
			{ID: 3, Name: "Animation"},
			{ID: 4, Name: "Thriller"},
			{ID: 5, Name: "Documentary"},
			{ID: 6, Name: "Action"},
		}
		if err := db.Create(&genres).Error; err != nil {
			return err
		}
	}

	return nil
}
