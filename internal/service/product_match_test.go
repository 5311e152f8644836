package service

import (
	"strings"
	"testing"

	"shop_chatbot_v1_202608/internal/model"
)

func TestExtractKeywords_ColorsFirst(t *testing.T) {
	keywords := extractKeywords("Do you have a NAVY blue sweater?")

	if len(keywords) == 0 {
		t.Fatal("应该提取到关键词")
	}
	// 颜色词优先于普通词
	if keywords[0] != "navy" && keywords[0] != "blue" {
		t.Errorf("首关键词 = %q, 颜色词应排在前面", keywords[0])
	}

	found := false
	for _, kw := range keywords {
		if kw == "sweater" {
			found = true
		}
	}
	if len(keywords) < 3 && !found {
		t.Errorf("keywords = %v, 缺少 sweater", keywords)
	}
}

func TestExtractKeywords_SkipsStopWordsAndShortWords(t *testing.T) {
	// 全是停用词和短词：不产生关键词
	keywords := extractKeywords("what about your order status please")
	if len(keywords) != 0 {
		t.Errorf("keywords = %v, want 空", keywords)
	}
}

func TestExtractKeywords_CapsAtMax(t *testing.T) {
	keywords := extractKeywords("leather jacket sweater denim flannel")
	if len(keywords) > matchKeywordMax {
		t.Errorf("关键词数 = %d, 不应超过 %d", len(keywords), matchKeywordMax)
	}
}

func TestBuildCatalogContext(t *testing.T) {
	name := "Slim Fit Jeans"
	brand := "Levi's"
	category := "Jeans"
	price := 49.99

	got := BuildCatalogContext([]model.Product{
		{ID: 1, Name: &name, Brand: &brand, Category: &category, RetailPrice: &price},
		{ID: 2}, // 全可选字段缺失的商品也要能渲染
	})

	if !strings.HasPrefix(got, "Relevant products from our catalog:") {
		t.Errorf("缺少标题行: %q", got)
	}
	if !strings.Contains(got, "- Slim Fit Jeans by Levi's [Jeans] $49.99") {
		t.Errorf("商品行格式错误: %q", got)
	}
	if !strings.Contains(got, "- (unnamed)") {
		t.Errorf("无名商品应显示占位: %q", got)
	}
}

func TestBuildCatalogContext_Empty(t *testing.T) {
	if got := BuildCatalogContext(nil); got != "" {
		t.Errorf("空结果应返回空串, got %q", got)
	}
}
