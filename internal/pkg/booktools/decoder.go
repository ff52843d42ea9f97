// Package booktools 解析模型返回的书稿内容
package booktools

import (
	"encoding/json"
	"fmt"
	"strings"

	model "quill/internal/model/generation"
)

// Decode 把原始回复解析为意图对应的结构
// 不返回错误：结构化解析失败时依次退回章节扫描、段落扫描和原文兜底
func Decode(req model.Request, raw string) model.Decoded {
	shape, structured := model.ShapeFor(req)
	if !structured {
		return model.Decoded{Content: strings.TrimSpace(raw), Method: model.DecodeText}
	}

	if _, ok := req.(*model.OutlineRequest); ok {
		return decodeOutline(raw)
	}
	return decodeRecord(shape, raw)
}

func decodeOutline(raw string) model.Decoded {
	if v, ok := parseJSONValue(raw); ok {
		if chapters, ok := outlineFromJSON(v); ok {
			return model.Decoded{Content: model.Outline{Chapters: chapters}, Method: model.DecodeJSON}
		}
	}

	if chapters, ok := scanOutline(raw); ok {
		return model.Decoded{Content: model.Outline{Chapters: chapters}, Method: model.DecodeChapters}
	}

	// 没有任何章节标题，整段文本作为一章
	s := scanSections(model.ChapterShape, raw)
	chapter := chapterFromScanner("Chapter 1", s, strings.TrimSpace(raw))
	return model.Decoded{Content: model.Outline{Chapters: []model.ChapterOutline{chapter}}, Method: fallbackMethod(s)}
}

func decodeRecord(shape model.Shape, raw string) model.Decoded {
	if v, ok := parseJSONValue(raw); ok {
		if rec, ok := recordFromJSON(shape, v); ok {
			return model.Decoded{Content: rec, Method: model.DecodeJSON}
		}
	}

	s := scanSections(shape, raw)
	rec := s.Record()
	if strings.TrimSpace(fmt.Sprint(rec[shape.Summary])) == "" {
		rec[shape.Summary] = strings.TrimSpace(raw)
	}
	return model.Decoded{Content: rec, Method: fallbackMethod(s)}
}

func fallbackMethod(s *sectionScanner) model.DecodeMethod {
	if s.switched {
		return model.DecodeSections
	}
	return model.DecodeRaw
}

// outlineFromJSON 接受 {"chapters": [...]} 或直接的章节数组
// 每个章节至少包含 title 和 summary
func outlineFromJSON(v any) ([]model.ChapterOutline, bool) {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case map[string]any:
		arr, ok := t["chapters"].([]any)
		if !ok {
			return nil, false
		}
		items = arr
	default:
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}

	chapters := make([]model.ChapterOutline, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok || !hasKeys(obj, model.ChapterShape.Required) {
			return nil, false
		}
		chapters = append(chapters, model.ChapterOutline{
			Title:         stringValue(obj["title"]),
			Summary:       stringValue(obj["summary"]),
			PlotPoints:    listValue(obj["plotPoints"]),
			CharacterArcs: listValue(obj["characterArcs"]),
			Conflicts:     listValue(obj["conflicts"]),
		})
	}
	return chapters, true
}

// recordFromJSON 校验必需字段后原样返回
// 模型有时会多包一层（如 {"character": {...}}），此时取内层对象
func recordFromJSON(shape model.Shape, v any) (model.Record, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	if hasKeys(obj, shape.Required) {
		return model.Record(obj), true
	}
	if len(obj) == 1 {
		for _, inner := range obj {
			if innerObj, ok := inner.(map[string]any); ok && hasKeys(innerObj, shape.Required) {
				return model.Record(innerObj), true
			}
		}
	}
	return nil, false
}

func hasKeys(obj map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return false
		}
	}
	return true
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		data, _ := json.Marshal(t)
		return string(data)
	}
}

// listValue 字符串数组原样保留，单个字符串按行拆分
func listValue(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(stringValue(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitItems(strings.Split(t, "\n"))
	default:
		return []string{}
	}
}
