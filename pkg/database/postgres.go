package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接
// dsn: 数据库连接字符串
// models: 需要自动建表/迁移的结构体指针
func InitDB(dsn string, models ...interface{}) (*gorm.DB, error) {
	dbLogger := logger.Default.LogMode(logger.Warn)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	// 获取底层的 sqlDB 对象，用于设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 SQL DB 失败: %w", err)
	}

	// 设置空闲连接池中连接的最大数量
	sqlDB.SetMaxIdleConns(10)
	// 设置打开数据库连接的最大数量
	sqlDB.SetMaxOpenConns(100)
	// 设置连接可复用的最大时间
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("✅ 数据库连接成功")

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("自动建表出错: %w", err)
		}
	}

	return db, nil
}

// TestConnection 数据库连通性探测
// 导入任务启动前必须通过，失败则整次运行中止
func TestConnection(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("数据库连接检查失败: %w", err)
	}
	return nil
}

// DropAll 删除全部表（破坏性操作，全量导入前的整库重建用）
// 按依赖逆序删除，避免外键约束报错
func DropAll(ctx context.Context, db *gorm.DB, models ...interface{}) error {
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.WithContext(ctx).Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("删除表失败: %w", err)
		}
	}
	log.Printf("🗑️ 已删除 %d 张表", len(models))
	return nil
}
