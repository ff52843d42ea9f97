package generation

// Field 结构化输出中的一个字段
type Field struct {
	Key      string   // JSON 键名
	Hint     string   // 写入提示词的字段说明
	List     bool     // 是否为字符串数组
	Keywords []string // 文本兜底解析时识别该段落的小写关键词
}

// Shape 结构化输出契约
// 提示词引擎据此描述期望的回复格式，解码器据此校验和兜底解析
type Shape struct {
	Fields   []Field
	Required []string // JSON 解析结果至少包含的键
	Summary  string   // 未归入任何段落的文本落入的字段
}

// Field 按键名查找字段
func (s Shape) Field(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Template 子模板：关注点说明 + 输出契约
type Template struct {
	Focus string
	Shape Shape
}

func text(key, hint string, keywords ...string) Field {
	return Field{Key: key, Hint: hint, Keywords: keywords}
}

func list(key, hint string, keywords ...string) Field {
	return Field{Key: key, Hint: hint, List: true, Keywords: keywords}
}

func describedShape(fields ...Field) Shape {
	all := append([]Field{text("description", "a concise overview paragraph", "overview", "description")}, fields...)
	return Shape{Fields: all, Required: []string{"description"}, Summary: "description"}
}
