package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shop_chatbot_v1_202608/internal/model"
	"shop_chatbot_v1_202608/internal/repository"
	"shop_chatbot_v1_202608/pkg/utils"
)

// ==================== 商品匹配（提示词增强） ====================

// 颜色词：用户消息里出现时优先作为检索关键词
var colorWords = []string{
	"black", "white", "red", "blue", "green", "yellow",
	"pink", "purple", "orange", "brown", "grey", "gray", "navy", "beige",
}

// 匹配时忽略的常见词
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "have": {}, "what": {},
	"where": {}, "when": {}, "your": {}, "about": {}, "order": {},
	"return": {}, "status": {}, "please": {}, "want": {}, "need": {},
	"looking": {}, "there": {}, "this": {}, "that": {}, "from": {},
}

const (
	matchKeywordMax = 3               // 每条消息最多取几个关键词去查库
	matchResultMax  = 5               // 注入提示词的商品上限
	matchCacheTTL   = 10 * time.Minute // 关键词检索结果缓存时长
)

// ProductMatcher 按关键词/颜色在商品目录做子串匹配
// 结果只用于拼接提示词上下文，不参与业务校验
type ProductMatcher struct {
	productRepo repository.ProductRepository
}

// NewProductMatcher 创建商品匹配器
func NewProductMatcher(productRepo repository.ProductRepository) *ProductMatcher {
	return &ProductMatcher{productRepo: productRepo}
}

// MatchProducts 从用户消息提取关键词并检索目录
// 同一关键词的检索结果走内存缓存，避免热词反复打数据库
func (m *ProductMatcher) MatchProducts(ctx context.Context, message string) []model.Product {
	keywords := extractKeywords(message)
	if len(keywords) == 0 {
		return nil
	}

	seen := make(map[int64]struct{})
	var matched []model.Product

	for _, kw := range keywords {
		products := m.searchCached(ctx, kw)
		for _, p := range products {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			matched = append(matched, p)
			if len(matched) >= matchResultMax {
				return matched
			}
		}
	}
	return matched
}

func (m *ProductMatcher) searchCached(ctx context.Context, keyword string) []model.Product {
	cacheKey := "product_match:" + keyword
	if v, ok := utils.GetCache(cacheKey); ok {
		if products, ok := v.([]model.Product); ok {
			return products
		}
	}

	products, err := m.productRepo.SearchByKeyword(ctx, keyword, matchResultMax)
	if err != nil {
		// 目录检索失败只影响提示词质量，不影响聊天流程
		return nil
	}

	utils.SetCache(cacheKey, products, matchCacheTTL)
	return products
}

// extractKeywords 关键词提取：先收颜色词，再收足够长的非停用词
func extractKeywords(message string) []string {
	lower := strings.ToLower(message)

	var keywords []string
	for _, color := range colorWords {
		if strings.Contains(lower, color) {
			keywords = append(keywords, color)
			if len(keywords) >= matchKeywordMax {
				return keywords
			}
		}
	}

	for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if len(word) < 4 {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) >= matchKeywordMax {
			break
		}
	}
	return keywords
}

// BuildCatalogContext 把匹配到的商品拼成提示词上下文
func BuildCatalogContext(products []model.Product) string {
	if len(products) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Relevant products from our catalog:\n")
	for _, p := range products {
		name := "(unnamed)"
		if p.Name != nil {
			name = *p.Name
		}
		sb.WriteString("- " + name)
		if p.Brand != nil {
			sb.WriteString(" by " + *p.Brand)
		}
		if p.Category != nil {
			sb.WriteString(" [" + *p.Category + "]")
		}
		if p.RetailPrice != nil {
			sb.WriteString(fmt.Sprintf(" $%.2f", *p.RetailPrice))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
