package model

import "time"

// ==================== Order 订单 ====================

// Order 订单
// user_id 在导入时强制校验：引用不存在用户的行会被跳过，不会落库
type Order struct {
	OrderID     int64      `gorm:"primaryKey;column:order_id"`
	UserID      int64      `gorm:"index;not null"`
	Status      string     `gorm:"size:255;not null"`
	Gender      *string    `gorm:"size:50" json:"gender"`
	CreatedAt   *time.Time `json:"created_at"`
	ReturnedAt  *time.Time `json:"returned_at"`
	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	NumOfItem   *int64     `json:"num_of_item"`

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID;references:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// ==================== OrderItem 订单项 ====================

// OrderItem 订单项
// 外键在导入时不做校验（与 Order→User 不同），按源数据原样落库
type OrderItem struct {
	ID              int64      `gorm:"primaryKey"`
	OrderID         *int64     `gorm:"index" json:"order_id"`
	UserID          *int64     `gorm:"index" json:"user_id"`
	ProductID       *int64     `gorm:"index" json:"product_id"`
	InventoryItemID *int64     `gorm:"index" json:"inventory_item_id"`
	Status          *string    `gorm:"size:255" json:"status"`
	CreatedAt       *time.Time `json:"created_at"`
	ShippedAt       *time.Time `json:"shipped_at"`
	DeliveredAt     *time.Time `json:"delivered_at"`
	ReturnedAt      *time.Time `json:"returned_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
