package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"shop_chatbot_v1_202608/internal/api/dto"
	"shop_chatbot_v1_202608/internal/model"
	"shop_chatbot_v1_202608/internal/repository"
)

// ==================== 错误定义 ====================

// ErrConversationNotFound 指定的会话不存在
var ErrConversationNotFound = errors.New("conversation not found")

// ==================== 澄清判断 ====================

// 客服支持范围关键词：消息里一个都不含时先反问澄清，不调 LLM
var supportKeywords = []string{"order", "product", "return", "status", "inventory"}

const clarificationReply = "Could you please clarify your request regarding our e-commerce services?"

func needsClarification(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range supportKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// ==================== ChatService 聊天服务 ====================

// ChatService 聊天服务
// 一次请求的流程：找到/新建会话 → 落库用户消息 → 澄清判断 →
// 历史 + 目录增强 → LLM 补全（成功失败都记调用日志）→ 落库 AI 消息
type ChatService struct {
	convRepo  repository.ConversationRepository
	aiLogRepo repository.AICallLogRepository
	matcher   *ProductMatcher
	completer Completer
}

// NewChatService 创建聊天服务
func NewChatService(
	convRepo repository.ConversationRepository,
	aiLogRepo repository.AICallLogRepository,
	matcher *ProductMatcher,
	completer Completer,
) *ChatService {
	return &ChatService{
		convRepo:  convRepo,
		aiLogRepo: aiLogRepo,
		matcher:   matcher,
		completer: completer,
	}
}

// Chat 处理一轮对话，返回会话内全部消息（按时间升序）
func (s *ChatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	session, err := s.resolveSession(ctx, req)
	if err != nil {
		return nil, err
	}

	// 先落库用户消息，LLM 失败也要保住这条记录
	userMsg := &model.ConversationMessage{
		SessionID: session.ID,
		Role:      model.MessageRoleUser,
		Content:   req.Message,
		Timestamp: time.Now(),
	}
	if err := s.convRepo.AppendMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("保存用户消息失败: %w", err)
	}

	aiContent := s.reply(ctx, session.ID, req.Message)

	aiMsg := &model.ConversationMessage{
		SessionID: session.ID,
		Role:      model.MessageRoleAI,
		Content:   aiContent,
		Timestamp: time.Now(),
	}
	if err := s.convRepo.AppendMessage(ctx, aiMsg); err != nil {
		return nil, fmt.Errorf("保存 AI 消息失败: %w", err)
	}

	return s.buildResponse(ctx, session.ID)
}

// History 会话历史
func (s *ChatService) History(ctx context.Context, sessionID int64) (*dto.ChatResponse, error) {
	if _, err := s.convRepo.GetSession(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return s.buildResponse(ctx, sessionID)
}

// Delete 删除会话及其全部消息
func (s *ChatService) Delete(ctx context.Context, sessionID int64) error {
	if _, err := s.convRepo.GetSession(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		return err
	}
	return s.convRepo.DeleteSession(ctx, sessionID)
}

// resolveSession 找到或新建会话
func (s *ChatService) resolveSession(ctx context.Context, req *dto.ChatRequest) (*model.ConversationSession, error) {
	if req.ConversationID != nil {
		session, err := s.convRepo.GetSession(ctx, *req.ConversationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrConversationNotFound
			}
			return nil, err
		}
		return session, nil
	}

	session := &model.ConversationSession{UserID: req.UserID}
	if err := s.convRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("创建会话失败: %w", err)
	}
	return session, nil
}

// reply 生成 AI 回复文本
// LLM 出错时把错误文本作为回复返回（不让整个请求失败），并记失败日志
func (s *ChatService) reply(ctx context.Context, sessionID int64, message string) string {
	if needsClarification(message) {
		return clarificationReply
	}

	turns, err := s.buildTurns(ctx, sessionID, message)
	if err != nil {
		log.Printf("❌ 组装对话历史失败: %v", err)
		return fmt.Sprintf("[LLM error: %v]", err)
	}

	start := time.Now()
	completion, err := s.completer.Complete(ctx, turns)
	duration := time.Since(start).Milliseconds()

	s.recordCall(ctx, sessionID, turns, completion, duration, err)

	if err != nil {
		log.Printf("❌ LLM 调用失败: %v", err)
		return fmt.Sprintf("[LLM error: %v]", err)
	}
	return completion
}

// buildTurns 组装发给 LLM 的有序轮次：目录上下文（若有）+ 全部历史
func (s *ChatService) buildTurns(ctx context.Context, sessionID int64, message string) ([]Turn, error) {
	history, err := s.convRepo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var turns []Turn

	// 提示词增强：目录里匹配到的商品作为开场上下文
	if catalog := BuildCatalogContext(s.matcher.MatchProducts(ctx, message)); catalog != "" {
		turns = append(turns, Turn{Role: model.MessageRoleUser, Content: catalog})
	}

	for _, msg := range history {
		turns = append(turns, Turn{Role: msg.Role, Content: msg.Content})
	}
	return turns, nil
}

// recordCall 记录一次 LLM 调用（成功或失败）
func (s *ChatService) recordCall(ctx context.Context, sessionID int64, turns []Turn, completion string, durationMs int64, callErr error) {
	inputChars := 0
	for _, t := range turns {
		inputChars += len(t.Content)
	}

	entry := &model.AICallLog{
		SessionID:   sessionID,
		ModelName:   s.completer.ModelName(),
		InputChars:  inputChars,
		OutputChars: len(completion),
		DurationMs:  durationMs,
		Status:      model.AICallStatusSuccess,
	}

	if callErr != nil {
		entry.Status = model.AICallStatusFailed
		entry.ErrorMsg = callErr.Error()
	} else if raw, err := json.Marshal(map[string]string{"text": completion}); err == nil {
		entry.RawResponse = raw
	}

	if err := s.aiLogRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ AI 调用日志写入失败: %v", err)
	}
}

// buildResponse 组装响应：会话全部消息，按时间升序
func (s *ChatService) buildResponse(ctx context.Context, sessionID int64) (*dto.ChatResponse, error) {
	msgs, err := s.convRepo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, dto.MessageView{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}

	return &dto.ChatResponse{
		ConversationID: sessionID,
		Messages:       views,
	}, nil
}
