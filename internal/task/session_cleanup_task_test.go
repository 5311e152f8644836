package task

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shop_chatbot_v1_202608/internal/model"
	"shop_chatbot_v1_202608/internal/repository"
)

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(&model.ConversationSession{}, &model.ConversationMessage{})
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func TestSessionCleanupTask_CleanupJob(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewConversationRepository(db)
	ctx := context.Background()

	stale := &model.ConversationSession{UserID: "stale"}
	fresh := &model.ConversationSession{UserID: "fresh"}
	repo.CreateSession(ctx, stale)
	repo.CreateSession(ctx, fresh)
	repo.AppendMessage(ctx, &model.ConversationMessage{
		SessionID: stale.ID,
		Role:      model.MessageRoleUser,
		Content:   "old message",
		Timestamp: time.Now(),
	})

	// 把 stale 拨到保留期之外
	db.Model(&model.ConversationSession{}).
		Where("id = ?", stale.ID).
		Update("updated_at", time.Now().Add(-48*time.Hour))

	cleanup := NewSessionCleanupTask(repo, 24*time.Hour)
	cleanup.cleanupJob(ctx)

	if _, err := repo.GetSession(ctx, stale.ID); err == nil {
		t.Error("过期会话应该被清理")
	}
	if _, err := repo.GetSession(ctx, fresh.ID); err != nil {
		t.Errorf("活跃会话不应被清理: %v", err)
	}

	// 过期会话的消息一并删除
	var count int64
	db.Model(&model.ConversationMessage{}).Where("session_id = ?", stale.ID).Count(&count)
	if count != 0 {
		t.Errorf("消息数 = %d, 应随会话一起清理", count)
	}
}

func TestNewSessionCleanupTask_DefaultRetention(t *testing.T) {
	cleanup := NewSessionCleanupTask(nil, 0)
	if cleanup.retention != 30*24*time.Hour {
		t.Errorf("retention = %v, want 720h", cleanup.retention)
	}
}
