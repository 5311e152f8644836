package service

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ==================== 文本补全契约 ====================

// Turn 对话中的一轮（角色 + 内容），按顺序传给补全服务
type Turn struct {
	Role    string // "user" 或 "ai"
	Content string
}

// Completer 不透明的文本补全服务：有序对话轮次进，单段文本出
// ChatService 只依赖这个接口，测试里用假实现替换
type Completer interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
	ModelName() string
}

// ==================== Gemini 实现 ====================

// GeminiConfig Gemini 配置
type GeminiConfig struct {
	ApiKey       string
	ModelVersion string // 如 "gemini-2.5-flash"
}

// GeminiService 基于 Gemini API 的文本补全实现
type GeminiService struct {
	Config *GeminiConfig
}

// NewGeminiService 创建 Gemini 补全服务
func NewGeminiService(cfg *GeminiConfig) *GeminiService {
	if cfg.ModelVersion == "" {
		cfg.ModelVersion = "gemini-2.5-flash"
	}
	return &GeminiService{Config: cfg}
}

// ModelName 当前使用的模型名
func (s *GeminiService) ModelName() string {
	return s.Config.ModelVersion
}

// Complete 多轮对话补全
// 历史轮次塞进 ChatSession.History，最后一轮作为本次发送的消息
func (s *GeminiService) Complete(ctx context.Context, turns []Turn) (string, error) {
	if s.Config.ApiKey == "" {
		return "", fmt.Errorf("Gemini API Key 未配置")
	}
	if len(turns) == 0 {
		return "", fmt.Errorf("对话轮次为空")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.Config.ApiKey))
	if err != nil {
		return "", fmt.Errorf("Gemini 初始化失败: %v", err)
	}
	defer client.Close()

	modelAI := client.GenerativeModel(s.Config.ModelVersion)

	cs := modelAI.StartChat()
	for _, turn := range turns[:len(turns)-1] {
		cs.History = append(cs.History, &genai.Content{
			Role:  geminiRole(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(turns[len(turns)-1].Content))
	if err != nil {
		return "", fmt.Errorf("Gemini 调用失败: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("Gemini 返回为空")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out, nil
}

// geminiRole 本地角色到 Gemini 角色的映射："ai" 在 Gemini 里叫 "model"
func geminiRole(role string) string {
	if role == "ai" {
		return "model"
	}
	return "user"
}
