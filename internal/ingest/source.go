package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== Source 表格数据源 ====================

// Source 一份已加载的表格数据源
// 表头按列名精确匹配；缺少必需列时打开即失败，对应实体的导入整体中止
type Source struct {
	Path   string
	header map[string]int
	rows   [][]string
}

// OpenSource 打开数据源，limit > 0 时只读取前 limit 条记录（抽样导入用）
// path 支持本地文件和 http(s) 地址
func OpenSource(path string, required []string, limit int) (*Source, error) {
	rc, err := openFileOrURL(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = 0

	head, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取表头失败 %s: %w", path, err)
	}

	header := make(map[string]int, len(head))
	for i, name := range head {
		header[strings.TrimSpace(name)] = i
	}

	// 必需列检查
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("数据源 %s 缺少必需列 %q", path, col)
		}
	}

	var rows [][]string
	for {
		if limit > 0 && len(rows) >= limit {
			break
		}
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取记录失败 %s: %w", path, err)
		}
		rows = append(rows, rec)
	}

	return &Source{Path: path, header: header, rows: rows}, nil
}

// Len 记录总数
func (s *Source) Len() int {
	return len(s.rows)
}

// Row 按源文件顺序取第 i 条记录
// line 为源文件行号（表头为第 1 行）
func (s *Source) Row(i int) Row {
	return Row{src: s, fields: s.rows[i], line: i + 2}
}

// openFileOrURL 打开本地文件或远程 CSV
func openFileOrURL(path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		client := resty.New()
		client.SetTimeout(5 * time.Minute)
		client.SetRetryCount(3)

		resp, err := client.R().Get(path)
		if err != nil {
			return nil, fmt.Errorf("下载数据源失败 %s: %w", path, err)
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("下载数据源失败 %s: 状态码 %d", path, resp.StatusCode())
		}
		return io.NopCloser(bytes.NewReader(resp.Body())), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开数据源失败: %w", err)
	}
	return f, nil
}

// ==================== Row 单条记录 ====================

// Row 数据源中的一条记录
type Row struct {
	src    *Source
	fields []string
	line   int
}

// Line 源文件行号
func (r Row) Line() int {
	return r.line
}

// get 按精确列名取值，列不存在或该行字段缺位时返回 false
func (r Row) get(col string) (string, bool) {
	idx, ok := r.src.header[col]
	if !ok || idx >= len(r.fields) {
		return "", false
	}
	return strings.TrimSpace(r.fields[idx]), true
}
