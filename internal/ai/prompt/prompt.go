// Package prompt 把校验后的生成请求渲染为 (system, user) 提示词对
// 纯函数，不做任何 I/O，相同输入得到相同输出
package prompt

import (
	"fmt"
	"strings"

	model "quill/internal/model/generation"
)

const baseGuidelines = `Editorial guidelines:
- Respect the conventions and reader expectations of the stated genre.
- Stay consistent with every book, character and world detail you are given; never contradict established facts.
- Match the tone of the material you are given unless asked otherwise.
- Prefer concrete, specific detail over generic filler.`

// roles 各意图的角色设定
var roles = map[model.Intent]string{
	model.IntentSynopsis:               "You are an experienced developmental editor who turns raw story ideas into compelling book synopses.",
	model.IntentOutline:                "You are a story architect who designs chapter-by-chapter outlines for novels.",
	model.IntentCharacter:              "You are a character designer who creates rich, believable characters for fiction.",
	model.IntentCharacterEnhancement:   "You are a character development coach who deepens existing fictional characters.",
	model.IntentCharacterAnalysis:      "You are a literary analyst who evaluates casts of characters for depth and dramatic potential.",
	model.IntentWorldbuilding:          "You are a worldbuilding consultant who invents coherent, story-serving world elements.",
	model.IntentChapterGeneration:      "You are a skilled novelist who writes complete, polished chapters.",
	model.IntentParagraphContinuation:  "You are a co-writer who continues a manuscript seamlessly in the author's voice.",
	model.IntentTextRewrite:            "You are a line editor who rewrites prose precisely according to the author's instruction.",
	model.IntentDialogueGeneration:     "You are a dialogue specialist who writes natural, character-revealing conversation.",
	model.IntentDescriptionEnhancement: "You are a prose stylist who makes descriptive writing vivid and immersive.",
	model.IntentConsistencyCheck:       "You are a continuity editor who finds contradictions and inconsistencies in manuscripts.",
	model.IntentWritingSuggestion:      "You are a writing mentor who gives specific, actionable feedback on prose.",
}

// outputRules 纯文本意图的输出要求
var outputRules = map[model.Intent]string{
	model.IntentSynopsis:               "Reply with the synopsis text only, without a title or preamble.",
	model.IntentChapterGeneration:      "Reply with the chapter prose only. Do not add notes, summaries or headings other than the chapter title.",
	model.IntentParagraphContinuation:  "Reply with the continuation only; do not repeat the existing text.",
	model.IntentTextRewrite:            "Reply with the rewritten text only, without explanations.",
	model.IntentDialogueGeneration:     "Reply with the dialogue scene only, using standard prose dialogue formatting.",
	model.IntentDescriptionEnhancement: "Reply with the enhanced passage only.",
	model.IntentConsistencyCheck:       "List each inconsistency as a bullet with the conflicting details and a suggested fix. If there are none, say so plainly.",
	model.IntentWritingSuggestion:      "Reply with a short bulleted list of suggestions, each quoting the passage it refers to.",
}

// Build 根据请求构建提示词对
func Build(req model.Request) (model.PromptPair, error) {
	user, err := userInstruction(req)
	if err != nil {
		return model.PromptPair{}, err
	}
	return model.PromptPair{
		System: systemInstruction(req.Intent()),
		User:   user,
	}, nil
}

func systemInstruction(intent model.Intent) string {
	parts := []string{roles[intent], baseGuidelines}
	if rule, ok := outputRules[intent]; ok {
		parts = append(parts, rule)
	} else {
		parts = append(parts, "When a JSON shape is requested, reply with that JSON only.")
	}
	return join(parts...)
}

func userInstruction(req model.Request) (string, error) {
	switch r := req.(type) {
	case *model.SynopsisRequest:
		return synopsis(r), nil
	case *model.OutlineRequest:
		return outline(r), nil
	case *model.CharacterRequest:
		return character(r), nil
	case *model.CharacterEnhancementRequest:
		return characterEnhancement(r), nil
	case *model.CharacterAnalysisRequest:
		return characterAnalysis(r), nil
	case *model.WorldbuildingRequest:
		return worldbuilding(r), nil
	case *model.ChapterGenerationRequest:
		return chapterGeneration(r), nil
	case *model.ParagraphContinuationRequest:
		return paragraphContinuation(r), nil
	case *model.TextRewriteRequest:
		return textRewrite(r), nil
	case *model.DialogueGenerationRequest:
		return dialogueGeneration(r), nil
	case *model.DescriptionEnhancementRequest:
		return descriptionEnhancement(r), nil
	case *model.ConsistencyCheckRequest:
		return consistencyCheck(r), nil
	case *model.WritingSuggestionRequest:
		return writingSuggestion(r), nil
	default:
		return "", fmt.Errorf("no prompt template for request type %T", req)
	}
}

func synopsis(r *model.SynopsisRequest) string {
	var k block
	k.line("Idea", r.Idea)
	k.line("Genre", r.Genre)
	return join(
		"Write a synopsis for a "+strings.TrimSpace(r.Genre)+" book based on the idea below.",
		k.String(),
		"Length: "+synopsisLength(r.Length)+". Introduce the protagonist, the central conflict and the stakes, "+
			"and hint at how the story escalates without giving away the ending.",
	)
}

func outline(r *model.OutlineRequest) string {
	guide, ok := outlineStructures[r.Structure]
	if !ok {
		guide = outlineStructures[model.StructureCustom]
	}
	return join(
		fmt.Sprintf("Create a %d-chapter outline for the book described below.", r.Chapters),
		guide,
		bookBlock(r.Context),
		"For each chapter give a title, a 2-4 sentence summary, the key plot points, how the characters change, and the conflicts in play.",
		chaptersContract(model.ChapterShape, r.Chapters),
	)
}

func character(r *model.CharacterRequest) string {
	var k block
	k.line("Name", r.Name)
	k.line("Role", r.Role)
	k.line("Importance", r.Importance)
	return join(
		"Create a detailed character profile for a new character in the book described below.",
		k.String(),
		bookBlock(r.Context),
		"Make the character fit the genre and complement, rather than duplicate, the existing cast.",
		objectContract(model.CharacterShape),
	)
}

func characterEnhancement(r *model.CharacterEnhancementRequest) string {
	tpl := model.EnhancementTemplate(r.EnhancementType)
	var book string
	if r.Context != nil {
		book = bookBlock(r.Context.Book)
	}
	var snapshot string
	if r.Context != nil && r.Context.Character != nil {
		snapshot = snapshotBlock(r.Context.Character)
	}
	return join(
		"Enhance the existing character below.",
		tpl.Focus,
		snapshot,
		book,
		"Build on what is already established; do not rename the character or contradict the current profile.",
		objectContract(tpl.Shape),
	)
}

func characterAnalysis(r *model.CharacterAnalysisRequest) string {
	focus, ok := model.AnalysisFocus[r.AnalysisType]
	if !ok {
		focus = model.AnalysisFocus[model.AnalysisDynamics]
	}
	var k block
	k.list("Characters", characterLines(r.Characters))
	return join(
		"Analyze the following characters.",
		focus,
		k.String(),
		bookBlock(r.BookContext),
		"Ground every observation in the character details provided.",
		objectContract(model.AnalysisShape),
	)
}

func worldbuilding(r *model.WorldbuildingRequest) string {
	tpl := model.WorldElementTemplate(r.ElementType)
	var k block
	k.line("Element type", string(r.ElementType))
	k.line("Name", r.Name)
	k.line("Author's notes", r.Description)
	return join(
		"Develop the following world element for the book described below.",
		tpl.Focus,
		k.String(),
		bookBlock(r.Context),
		"Make sure it is consistent with the existing world elements and creates opportunities for story.",
		objectContract(tpl.Shape),
	)
}

func chapterGeneration(r *model.ChapterGenerationRequest) string {
	words := r.TargetWords
	if words <= 0 {
		words = defaultChapterWords
	}
	var k block
	k.line("Chapter title", r.ChapterTitle)
	k.line("Chapter summary", r.ChapterSummary)
	k.list("Plot points to cover", r.PlotPoints)
	return join(
		"Write the next chapter of the book described below.",
		bookBlock(r.Context),
		k.section("Chapter plan:"),
		fmt.Sprintf("Aim for roughly %d words. Open with a strong hook, dramatize the key moments in scene rather than summary, and end on a beat that pulls the reader forward.", words),
	)
}

func paragraphContinuation(r *model.ParagraphContinuationRequest) string {
	var k block
	k.passage("Current text", r.CurrentText)
	return join(
		"Continue the text below with one to three paragraphs that follow naturally from where it stops.",
		writingBlock(r.Context),
		k.String(),
		"Keep the same point of view, tense and voice.",
	)
}

func textRewrite(r *model.TextRewriteRequest) string {
	var k block
	k.line("Instruction", r.Instruction)
	k.passage("Text", r.Text)
	return join(
		"Rewrite the text below according to the instruction.",
		writingBlock(r.Context),
		k.String(),
		"Preserve the meaning and any facts the instruction does not ask you to change.",
	)
}

func dialogueGeneration(r *model.DialogueGenerationRequest) string {
	c := r.Context
	if c == nil {
		c = &model.DialogueContext{}
	}
	var k block
	k.line("Situation", c.Situation)
	k.line("Tone", c.Tone)
	k.list("Characters", characterLines(c.Characters))
	k.passage("Preceding text", c.PrecedingText)
	return join(
		"Write a dialogue scene for the situation below.",
		k.String(),
		bookBlock(c.Book),
		"Give each character a distinct voice, let subtext carry part of the meaning, and keep dialogue tags simple.",
	)
}

func descriptionEnhancement(r *model.DescriptionEnhancementRequest) string {
	var k block
	k.passage("Passage", r.Text)
	return join(
		"Enhance the descriptive writing in the passage below.",
		lookup(descriptionFocus, r.EnhancementType),
		writingBlock(r.Context),
		k.String(),
	)
}

func consistencyCheck(r *model.ConsistencyCheckRequest) string {
	var k block
	k.passage("Text to check", r.Text)
	return join(
		"Check the text below for inconsistencies with the established story context and within itself: "+
			"names, physical details, timeline, locations, abilities and world rules.",
		writingBlock(r.Context),
		k.String(),
	)
}

func writingSuggestion(r *model.WritingSuggestionRequest) string {
	var k block
	k.passage("Passage", r.Text)
	return join(
		"Review the passage below and suggest concrete improvements.",
		lookup(suggestionFocus, r.SuggestionType),
		writingBlock(r.Context),
		k.String(),
	)
}
