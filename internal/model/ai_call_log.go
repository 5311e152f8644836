package model

import (
	"time"

	"gorm.io/datatypes"
)

// AICallLog AI调用日志
// 每次调用 LLM（无论成功失败）记一行，用于排查与用量统计
type AICallLog struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time

	// 关联会话
	SessionID int64 `gorm:"index;comment:会话ID"`

	// 调用信息
	ModelName string `gorm:"size:64;comment:模型名称"`

	// 用量统计（按字符数，提供方不回报 token 数时的近似值）
	InputChars  int `gorm:"default:0;comment:输入字符数"`
	OutputChars int `gorm:"default:0;comment:输出字符数"`

	// 性能
	DurationMs int64 `gorm:"comment:耗时(毫秒)"`

	// 状态
	Status   string `gorm:"size:32;index;default:success;comment:状态(success/failed)"`
	ErrorMsg string `gorm:"size:1024;comment:错误信息"`

	// 原始响应（PostgreSQL 下为 JSONB）
	RawResponse datatypes.JSON `gorm:"comment:原始响应"`
}

func (AICallLog) TableName() string {
	return "ai_call_logs"
}

// ==================== 状态常量 ====================

const (
	AICallStatusSuccess = "success"
	AICallStatusFailed  = "failed"
)

// AllModels 全部表模型，按依赖顺序排列
// 迁移与整库重建都以这里为准
func AllModels() []interface{} {
	return []interface{}{
		&DistributionCenter{},
		&Product{},
		&User{},
		&Order{},
		&InventoryItem{},
		&OrderItem{},
		&ConversationSession{},
		&ConversationMessage{},
		&AICallLog{},
	}
}
