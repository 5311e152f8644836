package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shop_chatbot_v1_202608/internal/controller"
	"shop_chatbot_v1_202608/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Chat *controller.ChatController
}

// SetupRouter 注册所有路由
func SetupRouter(ctls *Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())

	// 本地前端开发放开全部来源
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
	}))

	// API 路由组
	api := r.Group("/api")
	{
		// POST /api/chat
		api.POST("/chat", ctls.Chat.Chat)

		// conversations 会话管理
		conversations := api.Group("/conversations")
		{
			conversations.GET("/:id/messages", ctls.Chat.History)
			conversations.DELETE("/:id", ctls.Chat.Delete)
		}

		// GET /api/health
		api.GET("/health", ctls.Chat.Health)
	}

	return r
}
