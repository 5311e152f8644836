package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shop_chatbot_v1_202608/internal/model"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Product{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

func seedProducts(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []model.Product{
		{ID: 1, Name: strPtr("Black Denim Jacket"), Category: strPtr("Outerwear")},
		{ID: 2, Name: strPtr("White Cotton Tee"), Category: strPtr("Tops")},
		{ID: 3, Name: strPtr("Slim Fit Jeans"), Category: strPtr("Jeans")},
		{ID: 4, Name: strPtr("Rain Jacket"), Category: strPtr("Outerwear")},
	}
	if err := db.Create(&products).Error; err != nil {
		t.Fatalf("预置商品失败: %v", err)
	}
}

func TestProductRepo_SearchByKeyword(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	seedProducts(t, db)

	// 大小写不敏感，name 与 category 都参与匹配
	found, err := repo.SearchByKeyword(ctx, "JACKET", 5)
	if err != nil {
		t.Fatalf("SearchByKeyword() error = %v", err)
	}
	if len(found) != 2 {
		t.Errorf("匹配数 = %d, want 2", len(found))
	}

	found, err = repo.SearchByKeyword(ctx, "outerwear", 5)
	if err != nil {
		t.Fatalf("SearchByKeyword() error = %v", err)
	}
	if len(found) != 2 {
		t.Errorf("类目匹配数 = %d, want 2", len(found))
	}
}

func TestProductRepo_SearchByKeyword_Limit(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	seedProducts(t, db)

	found, err := repo.SearchByKeyword(ctx, "a", 2)
	if err != nil {
		t.Fatalf("SearchByKeyword() error = %v", err)
	}
	if len(found) > 2 {
		t.Errorf("匹配数 = %d, 不应超过 limit 2", len(found))
	}
}

func TestProductRepo_Count(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	seedProducts(t, db)

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 4 {
		t.Errorf("Count() = %d, want 4", n)
	}
}
