package ingest

import (
	"fmt"
	"strconv"
	"time"
)

// ==================== RecordError 记录级解析错误 ====================

// RecordError 单条记录的解析失败
// 只让这一条记录失败，不会连累同批次的其他记录
type RecordError struct {
	Line   int
	Column string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("第 %d 行 列 %q: %v", e.Line, e.Column, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func recordErr(r Row, col string, err error) *RecordError {
	return &RecordError{Line: r.line, Column: col, Err: err}
}

// ==================== 字段解析辅助 ====================

// reqString 必填字符串：缺失或为空则该条记录失败
func reqString(r Row, col string) (string, error) {
	v, ok := r.get(col)
	if !ok || v == "" {
		return "", recordErr(r, col, fmt.Errorf("必填字段缺失"))
	}
	return v, nil
}

// reqInt64 必填整数：缺失或无法转换则该条记录失败
func reqInt64(r Row, col string) (int64, error) {
	v, err := reqString(r, col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, recordErr(r, col, fmt.Errorf("整数转换失败: %q", v))
	}
	return n, nil
}

// optString 可选字符串：空值返回 nil（显式"缺失"，不是空串）
func optString(r Row, col string) *string {
	v, ok := r.get(col)
	if !ok || v == "" {
		return nil
	}
	return &v
}

// optInt64 可选整数：空值返回 nil，非空但无法转换则该条记录失败
func optInt64(r Row, col string) (*int64, error) {
	v, ok := r.get(col)
	if !ok || v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, recordErr(r, col, fmt.Errorf("整数转换失败: %q", v))
	}
	return &n, nil
}

// optFloat64 可选浮点数：空值返回 nil，非空但无法转换则该条记录失败
func optFloat64(r Row, col string) (*float64, error) {
	v, ok := r.get(col)
	if !ok || v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, recordErr(r, col, fmt.Errorf("浮点数转换失败: %q", v))
	}
	return &f, nil
}

// 历史订单数据里的时间戳格式参差不齐，宽松匹配多种布局
var timeLayouts = []string{
	"2006-01-02 15:04:05 MST",
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
}

// optTime 可选时间：空值或任何无法解析的值都返回 nil，永不让记录失败
// 故意宽松：时间戳质量参差是已知的数据问题，不值得为它丢掉整条记录
func optTime(r Row, col string) *time.Time {
	v, ok := r.get(col)
	if !ok || v == "" {
		return nil
	}
	return ParseDatetime(v)
}

// ParseDatetime 宽松的多格式时间解析，解析失败返回 nil
func ParseDatetime(v string) *time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

// ==================== 批量解析 ====================

// parseAll 逐条解析整个数据源
// 每条记录独立解析：坏记录只产生一条 RecordError，成功的记录照常进入结果集
func parseAll[T any](src *Source, parse func(Row) (T, error)) ([]T, []error) {
	out := make([]T, 0, src.Len())
	var failures []error

	for i := 0; i < src.Len(); i++ {
		v, err := parse(src.Row(i))
		if err != nil {
			failures = append(failures, err)
			continue
		}
		out = append(out, v)
	}
	return out, failures
}
