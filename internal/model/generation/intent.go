package generation

import "strings"

// Intent 生成请求的意图标签
type Intent string

const (
	IntentSynopsis               Intent = "synopsis"
	IntentOutline                Intent = "outline"
	IntentCharacter              Intent = "character"
	IntentCharacterEnhancement   Intent = "character_enhancement"
	IntentCharacterAnalysis      Intent = "character_analysis"
	IntentWorldbuilding          Intent = "worldbuilding"
	IntentChapterGeneration      Intent = "chapter_generation"
	IntentParagraphContinuation  Intent = "paragraph_continuation"
	IntentTextRewrite            Intent = "text_rewrite"
	IntentDialogueGeneration     Intent = "dialogue_generation"
	IntentDescriptionEnhancement Intent = "description_enhancement"
	IntentConsistencyCheck       Intent = "consistency_check"
	IntentWritingSuggestion      Intent = "writing_suggestion"
)

// AllIntents 支持的意图，顺序即错误信息中的展示顺序
var AllIntents = []Intent{
	IntentSynopsis,
	IntentOutline,
	IntentCharacter,
	IntentCharacterEnhancement,
	IntentCharacterAnalysis,
	IntentWorldbuilding,
	IntentChapterGeneration,
	IntentParagraphContinuation,
	IntentTextRewrite,
	IntentDialogueGeneration,
	IntentDescriptionEnhancement,
	IntentConsistencyCheck,
	IntentWritingSuggestion,
}

// IsValid 是否为已知意图
func (i Intent) IsValid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}

// HasStructuredOutput 是否要求模型按固定字段结构返回
func (i Intent) HasStructuredOutput() bool {
	switch i {
	case IntentOutline, IntentCharacter, IntentCharacterEnhancement,
		IntentCharacterAnalysis, IntentWorldbuilding:
		return true
	default:
		return false
	}
}

// SupportedIntentList 逗号分隔的意图列表
func SupportedIntentList() string {
	names := make([]string, len(AllIntents))
	for i, intent := range AllIntents {
		names[i] = string(intent)
	}
	return strings.Join(names, ", ")
}
