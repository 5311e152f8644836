package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shop_chatbot_v1_202608/internal/api/dto"
	"shop_chatbot_v1_202608/internal/service"
)

// ==================== ChatController 聊天控制器 ====================

// ChatController 聊天控制器
type ChatController struct {
	chatService *service.ChatService
	db          *gorm.DB
}

// NewChatController 创建聊天控制器
func NewChatController(chatService *service.ChatService, db *gorm.DB) *ChatController {
	return &ChatController{chatService: chatService, db: db}
}

// Chat 处理一轮对话
// POST /api/chat
func (c *ChatController) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	resp, err := c.chatService.Chat(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "Conversation not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// History 会话历史
// GET /api/conversations/:id/messages
func (c *ChatController) History(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的会话 ID",
		})
		return
	}

	resp, err := c.chatService.History(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "Conversation not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Delete 删除会话及其全部消息
// DELETE /api/conversations/:id
func (c *ChatController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的会话 ID",
		})
		return
	}

	if err := c.chatService.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "Conversation not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}

// Health 健康检查：探测数据库连通性
// GET /api/health
func (c *ChatController) Health(ctx *gin.Context) {
	if err := c.db.WithContext(ctx.Request.Context()).Exec("SELECT 1").Error; err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "down",
			"error":  err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
