package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shop_chatbot_v1_202608/internal/model"
)

// ==================== ConversationRepository 会话仓库 ====================

// ConversationRepository 会话仓库接口
type ConversationRepository interface {
	CreateSession(ctx context.Context, session *model.ConversationSession) error
	GetSession(ctx context.Context, id int64) (*model.ConversationSession, error)

	// AppendMessage 写入消息，并在同一事务里推进所属会话的 UpdatedAt
	AppendMessage(ctx context.Context, msg *model.ConversationMessage) error

	// ListMessages 按 Timestamp 升序返回会话的全部消息（不按自增 ID）
	ListMessages(ctx context.Context, sessionID int64) ([]model.ConversationMessage, error)

	// DeleteSession 删除会话及其全部消息
	DeleteSession(ctx context.Context, id int64) error

	// DeleteIdleSessions 删除 UpdatedAt 早于 cutoff 的会话（含消息），返回删除的会话数
	DeleteIdleSessions(ctx context.Context, cutoff time.Time) (int64, error)
}

// ==================== 实现 ====================

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建会话仓库
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) CreateSession(ctx context.Context, session *model.ConversationSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *conversationRepository) GetSession(ctx context.Context, id int64) (*model.ConversationSession, error) {
	var session model.ConversationSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *conversationRepository) AppendMessage(ctx context.Context, msg *model.ConversationMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		// 会话的 UpdatedAt 在每次写入所属消息时必须前进
		return tx.Model(&model.ConversationSession{}).
			Where("id = ?", msg.SessionID).
			Update("updated_at", time.Now()).Error
	})
}

func (r *conversationRepository) ListMessages(ctx context.Context, sessionID int64) ([]model.ConversationMessage, error) {
	var msgs []model.ConversationMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *conversationRepository) DeleteSession(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).
			Delete(&model.ConversationMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ConversationSession{}, id).Error
	})
}

func (r *conversationRepository) DeleteIdleSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&model.ConversationSession{}).
			Where("updated_at < ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("session_id IN ?", ids).
			Delete(&model.ConversationMessage{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&model.ConversationSession{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}
