package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shop_chatbot_v1_202608/internal/model"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	email := "ann@example.com"
	first := "Ann"
	user := model.User{ID: 1, FirstName: &first, Email: &email}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("预置用户失败: %v", err)
	}

	found, err := repo.GetByEmail(ctx, "ann@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found.ID != 1 {
		t.Errorf("ID = %d, want 1", found.ID)
	}

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("error = %v, want ErrRecordNotFound", err)
	}
}

func TestUserRepo_GetByID_Count(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	users := []model.User{{ID: 1}, {ID: 2}, {ID: 3}}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("预置用户失败: %v", err)
	}

	found, err := repo.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.ID != 2 {
		t.Errorf("ID = %d, want 2", found.ID)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}
