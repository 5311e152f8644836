package model

import "time"

// ==================== 消息角色常量 ====================

const (
	MessageRoleUser = "user"
	MessageRoleAI   = "ai"
)

// ==================== ConversationSession 会话 ====================

// ConversationSession 对话会话
// UserID 是调用方传入的不透明标识（可以是会话 ID 或用户名）
// UpdatedAt 在每次写入所属消息时必须前进，由 repository 在同一事务里维护
type ConversationSession struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:255;not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联：删除会话时级联删除其消息
	Messages []ConversationMessage `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (ConversationSession) TableName() string {
	return "conversation_sessions"
}

// ==================== ConversationMessage 消息 ====================

// ConversationMessage 对话消息
// 展示顺序按 Timestamp 排序，不按自增 ID
type ConversationMessage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID int64     `gorm:"index;not null" json:"session_id"`
	Role      string    `gorm:"size:50;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}
