package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"shop_chatbot_v1_202608/internal/repository"
)

// ==================== SessionCleanupTask 会话清理任务 ====================

// SessionCleanupTask 定时清理长期不活跃的会话（连同其消息）
type SessionCleanupTask struct {
	ConvRepo  repository.ConversationRepository
	Cron      *cron.Cron
	retention time.Duration // 会话保留时长，UpdatedAt 超过该时长未前进的会话被删除
}

// NewSessionCleanupTask 创建会话清理任务
func NewSessionCleanupTask(convRepo repository.ConversationRepository, retention time.Duration) *SessionCleanupTask {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &SessionCleanupTask{
		ConvRepo:  convRepo,
		Cron:      cron.New(cron.WithSeconds()),
		retention: retention,
	}
}

// Start 启动定时任务
func (t *SessionCleanupTask) Start() {
	// 每小时清理一次
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.cleanupJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动会话清理任务: %v", err)
	}

	t.Cron.Start()
	log.Println("会话清理任务已启动 (每小时检查一次)")
}

// Stop 停止定时任务
func (t *SessionCleanupTask) Stop() {
	t.Cron.Stop()
	log.Println("会话清理任务已停止")
}

// cleanupJob 清理逻辑
func (t *SessionCleanupTask) cleanupJob(ctx context.Context) {
	cutoff := time.Now().Add(-t.retention)

	deleted, err := t.ConvRepo.DeleteIdleSessions(ctx, cutoff)
	if err != nil {
		log.Printf("[Cron] 会话清理失败: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cron] 已清理 %d 个不活跃会话", deleted)
	}
}
