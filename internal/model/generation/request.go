package generation

// Request 生成请求（按 intent 区分的联合类型）
// 每个意图对应一个具体结构体，validate 标签描述该意图的必填与取值约束
type Request interface {
	Intent() Intent
	isRequest()
}

// BookContext 书籍上下文
type BookContext struct {
	Title              string             `json:"title" validate:"notblank"`
	Synopsis           string             `json:"synopsis" validate:"notblank"`
	Genre              string             `json:"genre" validate:"notblank"`
	ExistingCharacters []CharacterSummary `json:"existingCharacters,omitempty" validate:"-"`
	ExistingElements   []ElementSummary   `json:"existingElements,omitempty" validate:"-"`
}

// CharacterSummary 已有角色的摘要
type CharacterSummary struct {
	Name        string `json:"name" validate:"notblank"`
	Role        string `json:"role,omitempty"`
	Description string `json:"description,omitempty"`
}

// ElementSummary 已有世界观元素的摘要
type ElementSummary struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// CharacterSnapshot 待完善角色的当前资料
type CharacterSnapshot struct {
	Name        string `json:"name" validate:"notblank"`
	Role        string `json:"role,omitempty"`
	Description string `json:"description,omitempty"`
	Appearance  string `json:"appearance,omitempty"`
	Personality string `json:"personality,omitempty"`
	Backstory   string `json:"backstory,omitempty"`
	Motivation  string `json:"motivation,omitempty"`
}

// EnhancementContext 角色完善上下文
type EnhancementContext struct {
	Character *CharacterSnapshot `json:"character" validate:"required"`
	Book      *BookContext       `json:"book,omitempty" validate:"-"`
}

// WritingContext 编辑器类意图的可选上下文
type WritingContext struct {
	Title         string             `json:"title,omitempty"`
	Genre         string             `json:"genre,omitempty"`
	Synopsis      string             `json:"synopsis,omitempty"`
	ChapterTitle  string             `json:"chapterTitle,omitempty"`
	PrecedingText string             `json:"precedingText,omitempty"`
	FollowingText string             `json:"followingText,omitempty"`
	Tone          string             `json:"tone,omitempty"`
	Style         string             `json:"style,omitempty"`
	Characters    []CharacterSummary `json:"characters,omitempty" validate:"-"`
	WorldElements []ElementSummary   `json:"worldElements,omitempty" validate:"-"`
}

// DialogueContext 对话生成上下文
type DialogueContext struct {
	Situation     string             `json:"situation" validate:"notblank"`
	Characters    []CharacterSummary `json:"characters,omitempty" validate:"-"`
	Tone          string             `json:"tone,omitempty"`
	PrecedingText string             `json:"precedingText,omitempty"`
	Book          *BookContext       `json:"book,omitempty" validate:"-"`
}

// SynopsisRequest 根据创意生成梗概
type SynopsisRequest struct {
	Idea   string         `json:"idea" validate:"notblank"`
	Genre  string         `json:"genre" validate:"notblank"`
	Length SynopsisLength `json:"length,omitempty" validate:"omitempty,oneof=short medium long"`
}

// OutlineRequest 生成章节大纲
type OutlineRequest struct {
	BookID    string           `json:"bookId" validate:"notblank"`
	Chapters  int              `json:"chapters" validate:"chaptercount"`
	Structure OutlineStructure `json:"structure" validate:"notblank,oneof=three-act heros-journey custom"`
	Context   *BookContext     `json:"context" validate:"required"`
}

// CharacterRequest 生成角色档案
type CharacterRequest struct {
	BookID     string       `json:"bookId" validate:"notblank"`
	Name       string       `json:"name" validate:"notblank"`
	Role       string       `json:"role" validate:"notblank"`
	Importance string       `json:"importance,omitempty"`
	Context    *BookContext `json:"context" validate:"required"`
}

// CharacterEnhancementRequest 完善已有角色的某一方面
type CharacterEnhancementRequest struct {
	CharacterID     string              `json:"characterId" validate:"notblank"`
	EnhancementType EnhancementType     `json:"enhancementType" validate:"notblank,oneof=physical personality backstory goals voice relationships arc comprehensive"`
	Context         *EnhancementContext `json:"context" validate:"required"`
}

// CharacterAnalysisRequest 分析一组角色
type CharacterAnalysisRequest struct {
	AnalysisType AnalysisType       `json:"analysisType" validate:"notblank,oneof=relationships conflicts development dynamics"`
	Characters   []CharacterSummary `json:"characters" validate:"required,min=1,dive"`
	BookContext  *BookContext       `json:"bookContext,omitempty" validate:"-"`
}

// WorldbuildingRequest 生成世界观元素
type WorldbuildingRequest struct {
	BookID      string       `json:"bookId" validate:"notblank"`
	ElementType ElementType  `json:"elementType" validate:"notblank,oneof=location magic-system technology culture history organization item other"`
	Name        string       `json:"name" validate:"notblank"`
	Description string       `json:"description,omitempty"`
	Context     *BookContext `json:"context" validate:"required"`
}

// ChapterGenerationRequest 生成章节正文
type ChapterGenerationRequest struct {
	BookID         string       `json:"bookId" validate:"notblank"`
	ChapterTitle   string       `json:"chapterTitle,omitempty"`
	ChapterSummary string       `json:"chapterSummary,omitempty"`
	PlotPoints     []string     `json:"plotPoints,omitempty" validate:"-"`
	TargetWords    int          `json:"targetWords,omitempty"`
	Context        *BookContext `json:"context" validate:"required"`
}

// ParagraphContinuationRequest 续写段落
type ParagraphContinuationRequest struct {
	CurrentText string          `json:"currentText" validate:"notblank"`
	Context     *WritingContext `json:"context,omitempty" validate:"-"`
}

// TextRewriteRequest 按指令改写文本
type TextRewriteRequest struct {
	Text        string          `json:"text" validate:"notblank"`
	Instruction string          `json:"instruction" validate:"notblank"`
	Context     *WritingContext `json:"context,omitempty" validate:"-"`
}

// DialogueGenerationRequest 生成对话
type DialogueGenerationRequest struct {
	Context *DialogueContext `json:"context" validate:"required"`
}

// DescriptionEnhancementRequest 增强描写
type DescriptionEnhancementRequest struct {
	Text            string          `json:"text" validate:"notblank"`
	EnhancementType string          `json:"enhancementType,omitempty"`
	Context         *WritingContext `json:"context,omitempty" validate:"-"`
}

// ConsistencyCheckRequest 一致性检查
type ConsistencyCheckRequest struct {
	Text    string          `json:"text" validate:"notblank"`
	Context *WritingContext `json:"context" validate:"required"`
}

// WritingSuggestionRequest 写作建议
type WritingSuggestionRequest struct {
	Text           string          `json:"text" validate:"notblank"`
	SuggestionType string          `json:"suggestionType" validate:"notblank"`
	Context        *WritingContext `json:"context,omitempty" validate:"-"`
}

func (*SynopsisRequest) Intent() Intent               { return IntentSynopsis }
func (*OutlineRequest) Intent() Intent                { return IntentOutline }
func (*CharacterRequest) Intent() Intent              { return IntentCharacter }
func (*CharacterEnhancementRequest) Intent() Intent   { return IntentCharacterEnhancement }
func (*CharacterAnalysisRequest) Intent() Intent      { return IntentCharacterAnalysis }
func (*WorldbuildingRequest) Intent() Intent          { return IntentWorldbuilding }
func (*ChapterGenerationRequest) Intent() Intent      { return IntentChapterGeneration }
func (*ParagraphContinuationRequest) Intent() Intent  { return IntentParagraphContinuation }
func (*TextRewriteRequest) Intent() Intent            { return IntentTextRewrite }
func (*DialogueGenerationRequest) Intent() Intent     { return IntentDialogueGeneration }
func (*DescriptionEnhancementRequest) Intent() Intent { return IntentDescriptionEnhancement }
func (*ConsistencyCheckRequest) Intent() Intent       { return IntentConsistencyCheck }
func (*WritingSuggestionRequest) Intent() Intent      { return IntentWritingSuggestion }

func (*SynopsisRequest) isRequest()               {}
func (*OutlineRequest) isRequest()                {}
func (*CharacterRequest) isRequest()              {}
func (*CharacterEnhancementRequest) isRequest()   {}
func (*CharacterAnalysisRequest) isRequest()      {}
func (*WorldbuildingRequest) isRequest()          {}
func (*ChapterGenerationRequest) isRequest()      {}
func (*ParagraphContinuationRequest) isRequest()  {}
func (*TextRewriteRequest) isRequest()            {}
func (*DialogueGenerationRequest) isRequest()     {}
func (*DescriptionEnhancementRequest) isRequest() {}
func (*ConsistencyCheckRequest) isRequest()       {}
func (*WritingSuggestionRequest) isRequest()      {}

// NewRequest 返回意图对应的空请求，未知意图返回 false
func NewRequest(intent Intent) (Request, bool) {
	switch intent {
	case IntentSynopsis:
		return &SynopsisRequest{}, true
	case IntentOutline:
		return &OutlineRequest{}, true
	case IntentCharacter:
		return &CharacterRequest{}, true
	case IntentCharacterEnhancement:
		return &CharacterEnhancementRequest{}, true
	case IntentCharacterAnalysis:
		return &CharacterAnalysisRequest{}, true
	case IntentWorldbuilding:
		return &WorldbuildingRequest{}, true
	case IntentChapterGeneration:
		return &ChapterGenerationRequest{}, true
	case IntentParagraphContinuation:
		return &ParagraphContinuationRequest{}, true
	case IntentTextRewrite:
		return &TextRewriteRequest{}, true
	case IntentDialogueGeneration:
		return &DialogueGenerationRequest{}, true
	case IntentDescriptionEnhancement:
		return &DescriptionEnhancementRequest{}, true
	case IntentConsistencyCheck:
		return &ConsistencyCheckRequest{}, true
	case IntentWritingSuggestion:
		return &WritingSuggestionRequest{}, true
	default:
		return nil, false
	}
}
