package ingest

import (
	"context"
	"log"

	"gorm.io/gorm"
)

// DefaultBatchSize 每批写入的记录数
const DefaultBatchSize = 1000

// BatchStats 批量写入结果
type BatchStats struct {
	Written       int64 // 成功提交的记录数
	FailedBatches int   // 回滚的批次数
}

// WriteInBatches 按源顺序分批写入
// 每个批次单独开事务并提交；某批失败时回滚该批、记录日志，继续写后面的批次
// 不自动重试——演示/分析级导入以吞吐和前进为先，严格一致性由调用方事后核对行数
func WriteInBatches[T any](ctx context.Context, db *gorm.DB, entity string, rows []T, batchSize int) BatchStats {
	var stats BatchStats
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	total := len(rows)
	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}
		batch := rows[start:end]
		batchNo := start/batchSize + 1

		tx := db.WithContext(ctx).Begin()
		if tx.Error != nil {
			log.Printf("❌ %s 批次 %d 开启事务失败: %v", entity, batchNo, tx.Error)
			stats.FailedBatches++
			continue
		}

		if err := tx.Create(batch).Error; err != nil {
			tx.Rollback()
			log.Printf("❌ %s 批次 %d 写入失败（已回滚）: %v", entity, batchNo, err)
			stats.FailedBatches++
			continue
		}

		if err := tx.Commit().Error; err != nil {
			tx.Rollback()
			log.Printf("❌ %s 批次 %d 提交失败（已回滚）: %v", entity, batchNo, err)
			stats.FailedBatches++
			continue
		}

		stats.Written += int64(len(batch))
		log.Printf("✅ 已导入 %s 批次 %d (%d/%d)", entity, batchNo, end, total)
	}

	return stats
}
