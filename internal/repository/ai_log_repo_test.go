package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shop_chatbot_v1_202608/internal/model"
)

func setupAILogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.AICallLog{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func TestAICallLogRepo_Create(t *testing.T) {
	db := setupAILogTestDB(t)
	repo := NewAICallLogRepository(db)
	ctx := context.Background()

	entry := &model.AICallLog{
		SessionID:   1,
		ModelName:   "gemini-2.5-flash",
		InputChars:  500,
		OutputChars: 200,
		DurationMs:  1500,
		Status:      model.AICallStatusSuccess,
	}

	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if entry.ID == 0 {
		t.Error("ID 应该被自动分配")
	}
}

func TestAICallLogRepo_GetUsageBySession(t *testing.T) {
	db := setupAILogTestDB(t)
	repo := NewAICallLogRepository(db)
	ctx := context.Background()

	logs := []*model.AICallLog{
		{SessionID: 1, ModelName: "gemini-2.5-flash", InputChars: 100, OutputChars: 50, DurationMs: 1000, Status: model.AICallStatusSuccess},
		{SessionID: 1, ModelName: "gemini-2.5-flash", InputChars: 200, OutputChars: 80, DurationMs: 2000, Status: model.AICallStatusSuccess},
		{SessionID: 1, ModelName: "gemini-2.5-flash", InputChars: 50, OutputChars: 0, DurationMs: 500, Status: model.AICallStatusFailed, ErrorMsg: "timeout"},
		{SessionID: 2, ModelName: "gemini-2.5-flash", InputChars: 999, OutputChars: 999, DurationMs: 100, Status: model.AICallStatusSuccess},
	}
	for _, l := range logs {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	stats, err := repo.GetUsageBySession(ctx, 1)
	if err != nil {
		t.Fatalf("GetUsageBySession() error = %v", err)
	}

	if stats.TotalCalls != 3 {
		t.Errorf("TotalCalls = %d, want 3", stats.TotalCalls)
	}
	if stats.TotalInputChars != 350 {
		t.Errorf("TotalInputChars = %d, want 350", stats.TotalInputChars)
	}
	if stats.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, want 2", stats.SuccessCount)
	}
	if stats.FailedCount != 1 {
		t.Errorf("FailedCount = %d, want 1", stats.FailedCount)
	}
}
