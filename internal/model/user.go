package model

import "time"

// User 顾客
// 来自历史数据源，导入后只读；Email 存在时要求唯一
type User struct {
	ID            int64      `gorm:"primaryKey"`
	FirstName     *string    `gorm:"size:255" json:"first_name"`
	LastName      *string    `gorm:"size:255" json:"last_name"`
	Email         *string    `gorm:"size:255;uniqueIndex" json:"email"`
	Age           *int64     `json:"age"`
	Gender        *string    `gorm:"size:50" json:"gender"`
	State         *string    `gorm:"size:255" json:"state"`
	StreetAddress *string    `gorm:"size:500" json:"street_address"`
	PostalCode    *string    `gorm:"size:50" json:"postal_code"`
	City          *string    `gorm:"size:255" json:"city"`
	Country       *string    `gorm:"size:255" json:"country"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	TrafficSource *string    `gorm:"size:255" json:"traffic_source"`
	CreatedAt     *time.Time `json:"created_at"`

	// 关联
	Orders     []Order     `gorm:"foreignKey:UserID"`
	OrderItems []OrderItem `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
