package model

import "time"

// ==================== DistributionCenter 配送中心 ====================

// DistributionCenter 配送中心
// ID 来自数据源，不使用自增主键
type DistributionCenter struct {
	ID        int64    `gorm:"primaryKey"`
	Name      string   `gorm:"size:255;not null"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// 关联
	Products []Product `gorm:"foreignKey:DistributionCenterID"`
}

func (DistributionCenter) TableName() string {
	return "distribution_centers"
}

// ==================== Product 商品 ====================

// Product 商品
// 可选字段统一用指针表示"缺失"，与合法的零值/空串区分
type Product struct {
	ID                   int64    `gorm:"primaryKey"`
	Cost                 *float64 `json:"cost"`
	Category             *string  `gorm:"size:255" json:"category"`
	Name                 *string  `gorm:"size:255" json:"name"`
	Brand                *string  `gorm:"size:255" json:"brand"`
	RetailPrice          *float64 `json:"retail_price"`
	Department           *string  `gorm:"size:255" json:"department"`
	SKU                  *string  `gorm:"size:255;uniqueIndex" json:"sku"`
	DistributionCenterID *int64   `gorm:"index" json:"distribution_center_id"`

	// 关联
	InventoryItems []InventoryItem `gorm:"foreignKey:ProductID"`
	OrderItems     []OrderItem     `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// ==================== InventoryItem 库存项 ====================

// InventoryItem 库存项
// product_* 字段是导入时的商品快照（反规范化），之后不与 Product 保持同步
type InventoryItem struct {
	ID        int64      `gorm:"primaryKey"`
	ProductID *int64     `gorm:"index" json:"product_id"`
	CreatedAt *time.Time `json:"created_at"`
	SoldAt    *time.Time `json:"sold_at"`
	Cost      *float64   `json:"cost"`

	// 商品快照
	ProductCategory             *string  `gorm:"size:255" json:"product_category"`
	ProductName                 *string  `gorm:"size:255" json:"product_name"`
	ProductBrand                *string  `gorm:"size:255" json:"product_brand"`
	ProductRetailPrice          *float64 `json:"product_retail_price"`
	ProductDepartment           *string  `gorm:"size:255" json:"product_department"`
	ProductSKU                  *string  `gorm:"size:255" json:"product_sku"`
	ProductDistributionCenterID *int64   `json:"product_distribution_center_id"`

	// 关联
	OrderItems []OrderItem `gorm:"foreignKey:InventoryItemID"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
