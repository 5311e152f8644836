package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shop_chatbot_v1_202608/internal/model"
)

func setupConvTestDB(t *testing.T) *gorm.DB {
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

func TestConversationRepo_CreateSession(t *testing.T) {
	db := setupConvTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	session := &model.ConversationSession{UserID: "alice"}
	if err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if session.ID == 0 {
		t.Error("ID 应该被自动分配")
	}

	found, err := repo.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if found.UserID != "alice" {
		t.Errorf("UserID = %s, want alice", found.UserID)
	}
}

func TestConversationRepo_AppendMessageTouchesSession(t *testing.T) {
	db := setupConvTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	session := &model.ConversationSession{UserID: "alice"}
	repo.CreateSession(ctx, session)

	before, _ := repo.GetSession(ctx, session.ID)

	// 确保时间可区分
	time.Sleep(10 * time.Millisecond)

	msg := &model.ConversationMessage{
		SessionID: session.ID,
		Role:      model.MessageRoleUser,
		Content:   "where is my order?",
		Timestamp: time.Now(),
	}
	if err := repo.AppendMessage(ctx, msg); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}

	after, _ := repo.GetSession(ctx, session.ID)
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("UpdatedAt 应该随消息写入前进: before=%v after=%v",
			before.UpdatedAt, after.UpdatedAt)
	}
}

func TestConversationRepo_ListMessagesOrderedByTimestamp(t *testing.T) {
	db := setupConvTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	session := &model.ConversationSession{UserID: "alice"}
	repo.CreateSession(ctx, session)

	base := time.Now()
	// 故意乱序插入：展示顺序按 Timestamp，不按自增 ID
	times := []time.Time{
		base.Add(2 * time.Second),
		base,
		base.Add(1 * time.Second),
	}
	contents := []string{"third", "first", "second"}
	for i := range times {
		err := repo.AppendMessage(ctx, &model.ConversationMessage{
			SessionID: session.ID,
			Role:      model.MessageRoleUser,
			Content:   contents[i],
			Timestamp: times[i],
		})
		if err != nil {
			t.Fatalf("AppendMessage() error = %v", err)
		}
	}

	msgs, err := repo.ListMessages(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("消息数 = %d, want 3", len(msgs))
	}

	want := []string{"first", "second", "third"}
	for i, m := range msgs {
		if m.Content != want[i] {
			t.Errorf("第 %d 条 = %s, want %s", i, m.Content, want[i])
		}
	}
}

func TestConversationRepo_DeleteSessionRemovesMessages(t *testing.T) {
	db := setupConvTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	session := &model.ConversationSession{UserID: "alice"}
	repo.CreateSession(ctx, session)
	repo.AppendMessage(ctx, &model.ConversationMessage{
		SessionID: session.ID,
		Role:      model.MessageRoleUser,
		Content:   "hi",
		Timestamp: time.Now(),
	})

	if err := repo.DeleteSession(ctx, session.ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	if _, err := repo.GetSession(ctx, session.ID); err == nil {
		t.Error("会话删除后 GetSession() 应该报错")
	}

	var count int64
	db.Model(&model.ConversationMessage{}).Where("session_id = ?", session.ID).Count(&count)
	if count != 0 {
		t.Errorf("消息数 = %d, 会话删除后消息应一并删除", count)
	}
}

func TestConversationRepo_DeleteIdleSessions(t *testing.T) {
	db := setupConvTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	stale := &model.ConversationSession{UserID: "stale"}
	fresh := &model.ConversationSession{UserID: "fresh"}
	repo.CreateSession(ctx, stale)
	repo.CreateSession(ctx, fresh)

	// 把 stale 的 UpdatedAt 拨到 40 天前
	old := time.Now().Add(-40 * 24 * time.Hour)
	db.Model(&model.ConversationSession{}).
		Where("id = ?", stale.ID).
		Update("updated_at", old)

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	deleted, err := repo.DeleteIdleSessions(ctx, cutoff)
	if err != nil {
		t.Fatalf("DeleteIdleSessions() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("删除数 = %d, want 1", deleted)
	}

	if _, err := repo.GetSession(ctx, stale.ID); err == nil {
		t.Error("过期会话应该被删除")
	}
	if _, err := repo.GetSession(ctx, fresh.ID); err != nil {
		t.Errorf("活跃会话不应被删除: %v", err)
	}
}
