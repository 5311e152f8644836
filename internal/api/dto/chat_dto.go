package dto

import "time"

// ==================== 聊天接口 DTO ====================

// ChatRequest 聊天请求
// ConversationID 为空时新建会话
type ChatRequest struct {
	UserID         string `json:"user_id" binding:"required"`
	Message        string `json:"message" binding:"required"`
	ConversationID *int64 `json:"conversation_id"`
}

// MessageView 消息视图
type MessageView struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatResponse 聊天响应：会话内全部消息，按时间升序
type ChatResponse struct {
	ConversationID int64         `json:"conversation_id"`
	Messages       []MessageView `json:"messages"`
}
