package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"shop_chatbot_v1_202608/internal/ingest"
	"shop_chatbot_v1_202608/pkg/database"
)

// 数据导入入口
//
// 全量模式 (-mode=full)：整库重建后按依赖顺序导入全部 6 类 CSV
// 抽样模式 (-mode=sample)：仅建表，导入配送中心全量 + 商品/用户/订单各前 1000 行
func main() {
	mode := flag.String("mode", "full", "导入模式: full 或 sample")
	dataDir := flag.String("data", getEnv("DATA_DIR", "./data"), "CSV 数据目录")
	timeout := flag.Duration("timeout", 30*time.Minute, "导入超时时间")
	flag.Parse()

	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=password dbname=ecommerce_chatbot port=5432 sslmode=disable")

	// 连接数据库，建表交给 Loader 自己处理
	db, err := database.InitDB(dsn)
	if err != nil {
		log.Fatalf("❌ 数据库连接失败: %v", err)
	}

	loader := ingest.NewLoader(db, *dataDir)
	if batchSize := getEnvInt("BATCH_SIZE", 0); batchSize > 0 {
		loader.SetBatchSize(batchSize)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	var reports []*ingest.LoadReport

	switch *mode {
	case "full":
		log.Println("🚀 开始全量导入...")
		reports, err = loader.RunFull(ctx)
	case "sample":
		log.Println("🚀 开始抽样导入...")
		reports, err = loader.RunSample(ctx)
	default:
		log.Fatalf("❌ 未知模式: %s (支持 full / sample)", *mode)
	}

	// 已完成部分的报告先打出来，再决定进程退出码
	for _, r := range reports {
		log.Println(r.Summary())
	}

	if err != nil {
		log.Fatalf("❌ 导入中断: %v", err)
	}

	log.Printf("🎉 导入完成，耗时 %v", time.Since(start).Round(time.Millisecond))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
