package generation

// ChapterOutline 大纲中的一章
type ChapterOutline struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	PlotPoints    []string `json:"plotPoints"`
	CharacterArcs []string `json:"characterArcs"`
	Conflicts     []string `json:"conflicts"`
}

// Outline 大纲解码结果
type Outline struct {
	Chapters []ChapterOutline `json:"chapters"`
}

// Record 对象型契约的解码结果，键与 Shape 字段一致
// 列表字段的值为 []string，其余为 string（JSON 直接解析时保留原始值）
type Record map[string]any

// DecodeMethod 解码结果的来源
type DecodeMethod string

const (
	DecodeJSON     DecodeMethod = "json"     // 直接解析结构化数据
	DecodeChapters DecodeMethod = "chapters" // 章节标题扫描
	DecodeSections DecodeMethod = "sections" // 段落关键词扫描
	DecodeRaw      DecodeMethod = "raw"      // 原文兜底
	DecodeText     DecodeMethod = "text"     // 无结构化契约，直接返回文本
)

// Structured 是否经由结构化路径解析
func (m DecodeMethod) Structured() bool {
	return m == DecodeJSON || m == DecodeText
}

// Decoded 解码结果
type Decoded struct {
	Content any
	Method  DecodeMethod
}
