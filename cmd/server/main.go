package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shop_chatbot_v1_202608/internal/controller"
	"shop_chatbot_v1_202608/internal/model"
	"shop_chatbot_v1_202608/internal/repository"
	"shop_chatbot_v1_202608/internal/router"
	"shop_chatbot_v1_202608/internal/service"
	"shop_chatbot_v1_202608/internal/task"
	"shop_chatbot_v1_202608/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Conversation repository.ConversationRepository
	Product      repository.ProductRepository
	User         repository.UserRepository
	AiCallLog    repository.AICallLogRepository
}

// Services 服务集合
type Services struct {
	AI   service.Completer
	Chat *service.ChatService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
// 聊天服务只做非破坏性建表，整库重建交给 loader 的全量模式
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=password dbname=ecommerce_chatbot port=5432 sslmode=disable")

	db, err := database.InitDB(dsn, model.AllModels()...)
	if err != nil {
		log.Fatalf("❌ 数据库初始化失败: %v", err)
	}
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Conversation: repository.NewConversationRepository(db),
		Product:      repository.NewProductRepository(db),
		User:         repository.NewUserRepository(db),
		AiCallLog:    repository.NewAICallLogRepository(db),
	}

	// -------- AI 服务 --------
	aiSvc := service.NewGeminiService(&service.GeminiConfig{
		ApiKey:       getEnv("GEMINI_API_KEY", ""),
		ModelVersion: getEnv("GEMINI_MODEL", ""),
	})

	// -------- 业务服务 --------
	matcher := service.NewProductMatcher(repos.Product)
	chatSvc := service.NewChatService(repos.Conversation, repos.AiCallLog, matcher, aiSvc)

	services := &Services{
		AI:   aiSvc,
		Chat: chatSvc,
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Chat: controller.NewChatController(chatSvc, db),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	retentionDays := getEnvInt("SESSION_RETENTION_DAYS", 30)

	cleanupTask := task.NewSessionCleanupTask(
		deps.Repos.Conversation,
		time.Duration(retentionDays)*24*time.Hour,
	)
	cleanupTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

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
