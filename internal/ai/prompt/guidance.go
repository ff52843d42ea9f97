package prompt

import (
	"strings"

	model "quill/internal/model/generation"
)

// synopsisLengths 梗概篇幅要求，缺省为 medium
var synopsisLengths = map[model.SynopsisLength]string{
	model.LengthShort:  "one tight paragraph of roughly 100-150 words",
	model.LengthMedium: "two or three paragraphs totalling roughly 250-400 words",
	model.LengthLong:   "four to six paragraphs totalling roughly 500-800 words",
}

// outlineStructures 大纲结构说明
var outlineStructures = map[model.OutlineStructure]string{
	model.StructureThreeAct: "Use a three-act structure: roughly the first quarter of the chapters for setup and the inciting incident, " +
		"the middle half for rising complications and a midpoint reversal, and the final quarter for the crisis, climax and resolution.",
	model.StructureHerosJourney: "Follow the hero's journey: the ordinary world, the call and its refusal, meeting the mentor, " +
		"crossing the threshold, tests and allies, the ordeal, the reward, the road back, resurrection and the return with the elixir.",
	model.StructureCustom: "Choose whatever structure best serves this story, but make sure every chapter escalates stakes or " +
		"changes the situation, and that the ending pays off the setup.",
}

// suggestionFocus 写作建议的关注方向，未知类型使用 general
var suggestionFocus = map[string]string{
	"pacing":      "Focus on pacing: where the passage drags, where it rushes, and how sentence and scene length could be adjusted.",
	"dialogue":    "Focus on dialogue: whether each line sounds like its speaker, carries subtext and moves the scene forward.",
	"description": "Focus on description: sensory detail, specificity and whether description is woven into action.",
	"character":   "Focus on characterization: whether motivations are clear and actions consistent with who the characters are.",
	"plot":        "Focus on plot: causality, stakes, tension and whether events follow convincingly from earlier choices.",
	"style":       "Focus on prose style: word choice, rhythm, clarity and voice.",
	"grammar":     "Focus on grammar, punctuation and sentence-level clarity, without flattening the author's voice.",
	"general":     "Give the most valuable suggestions across pacing, character, dialogue, description and prose style.",
}

// descriptionFocus 描写增强的关注方向，未知类型使用 general
var descriptionFocus = map[string]string{
	"sensory":    "Enrich the passage with concrete sensory detail: sound, smell, texture and taste as well as sight.",
	"atmosphere": "Deepen the atmosphere and mood so the reader feels the setting before it is explained.",
	"emotional":  "Bring out the emotional undercurrent through physical reactions and interior perception.",
	"visual":     "Sharpen the visual imagery with precise, vivid and unexpected details.",
	"action":     "Make the action clearer and more kinetic, with strong verbs and controlled rhythm.",
	"general":    "Make the description more vivid, specific and immersive while keeping its length reasonable.",
}

func lookup(table map[string]string, key string) string {
	if v, ok := table[strings.ToLower(strings.TrimSpace(key))]; ok {
		return v
	}
	return table["general"]
}

func synopsisLength(l model.SynopsisLength) string {
	if v, ok := synopsisLengths[l]; ok {
		return v
	}
	return synopsisLengths[model.LengthMedium]
}

// defaultChapterWords 章节正文默认目标字数
const defaultChapterWords = 2500
