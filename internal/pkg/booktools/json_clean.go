package booktools

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("(?s)^\\s*```(?:json|JSON)?\\s*\\n(.*?)\\n\\s*```\\s*$")

// cleanJSONContent 去掉 markdown 代码块标记
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if matches := fencePattern.FindStringSubmatch(content); len(matches) > 1 {
		content = matches[1]
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// extractJSON 截取模型输出中的第一个 JSON 对象或数组
// 模型可能在 JSON 前后夹杂说明文字
func extractJSON(s string) string {
	raw := cleanJSONContent(s)
	if raw == "" {
		return raw
	}

	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	start, end := -1, -1
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		start = objStart
		end = strings.LastIndex(raw, "}")
	case arrStart >= 0:
		start = arrStart
		end = strings.LastIndex(raw, "]")
	}
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	return raw
}

// parseJSONValue 解析为 map 或 slice，失败返回 false
func parseJSONValue(s string) (any, bool) {
	raw := extractJSON(s)
	if raw == "" || (raw[0] != '{' && raw[0] != '[') {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false
	}
	return v, true
}
