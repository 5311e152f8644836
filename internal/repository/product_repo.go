package repository

import (
	"context"

	"gorm.io/gorm"

	"shop_chatbot_v1_202608/internal/model"
)

// ==================== ProductRepository 商品仓库 ====================

// ProductRepository 商品仓库接口
// 聊天服务按名称/类目子串检索商品，用于提示词增强
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Count(ctx context.Context) (int64, error)

	// SearchByKeyword 在 name 与 category 上做不区分大小写的子串匹配
	SearchByKeyword(ctx context.Context, keyword string, limit int) ([]model.Product, error)
}

// ==================== 实现 ====================

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepository) SearchByKeyword(ctx context.Context, keyword string, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 5
	}
	pattern := "%" + keyword + "%"

	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)", pattern, pattern).
		Limit(limit).
		Find(&products).Error
	return products, err
}
