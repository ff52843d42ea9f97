package generation

// ChapterShape 大纲中单个章节记录的契约
var ChapterShape = Shape{
	Fields: []Field{
		text("title", "the chapter title"),
		text("summary", "2-4 sentences describing what happens", "summary", "overview"),
		list("plotPoints", "ordered key events of the chapter", "plot point", "key event"),
		list("characterArcs", "how characters change or are tested in this chapter", "character arc", "character development"),
		list("conflicts", "the tensions or obstacles driving the chapter", "conflict"),
	},
	Required: []string{"title", "summary"},
	Summary:  "summary",
}

// CharacterShape 新角色档案的契约
var CharacterShape = Shape{
	Fields: []Field{
		text("name", "the character's full name"),
		text("role", "their narrative role"),
		text("description", "a concise overview paragraph", "overview", "description"),
		text("appearance", "physical appearance", "appearance", "physical"),
		text("personality", "temperament and defining traits", "personality"),
		text("backstory", "relevant history before the story begins", "backstory", "background", "history"),
		text("motivation", "what drives them", "motivation"),
		list("goals", "concrete goals", "goal"),
		list("fears", "fears and insecurities", "fear"),
		list("strengths", "strengths", "strength"),
		list("weaknesses", "flaws and weaknesses", "weakness", "flaw"),
		list("relationships", "key relationships with other characters", "relationship"),
		text("arc", "their likely arc over the story", "character arc", "arc"),
	},
	Required: []string{"name", "description"},
	Summary:  "description",
}

// AnalysisShape 角色分析结果的契约
var AnalysisShape = Shape{
	Fields: []Field{
		text("summary", "a short overall assessment", "summary", "overview"),
		list("insights", "specific observations, one per item", "insight", "observation", "finding"),
		list("strengths", "what is already working", "strength"),
		list("issues", "problems, gaps or inconsistencies", "issue", "problem", "weakness"),
		list("recommendations", "actionable suggestions", "recommendation", "suggestion"),
	},
	Required: []string{"summary"},
	Summary:  "summary",
}

// EnhancementTemplates 角色完善子模板
var EnhancementTemplates = map[EnhancementType]Template{
	EnhancementPhysical: {
		Focus: "Develop the character's physical presence: build, features, how they move and dress, and what a stranger notices first.",
		Shape: describedShape(
			text("appearance", "detailed physical appearance", "appearance", "physical"),
			list("distinguishingFeatures", "memorable marks or features", "distinguishing", "feature"),
			list("mannerisms", "habitual gestures and movements", "mannerism", "gesture"),
			text("clothing", "typical clothing and style", "clothing", "style", "attire"),
		),
	},
	EnhancementPersonality: {
		Focus: "Deepen the character's personality: core traits, contradictions, strengths and flaws that create story.",
		Shape: describedShape(
			list("coreTraits", "defining personality traits", "core trait", "trait"),
			list("strengths", "strengths", "strength"),
			list("flaws", "flaws that cause trouble", "flaw", "weakness"),
			list("quirks", "small habits or quirks", "quirk", "habit"),
		),
	},
	EnhancementBackstory: {
		Focus: "Build the character's backstory: origins, formative events and the wounds and secrets they carry into the story.",
		Shape: describedShape(
			text("origin", "where and how they grew up", "origin", "childhood"),
			list("formativeEvents", "events that shaped them", "formative", "event"),
			list("secrets", "things they hide", "secret"),
			text("wound", "the central emotional wound", "wound", "trauma"),
		),
	},
	EnhancementGoals: {
		Focus: "Clarify what the character wants and needs: external goal, internal need, motivations and what stands in the way.",
		Shape: describedShape(
			text("externalGoal", "what they actively pursue", "external goal", "want"),
			text("internalNeed", "what they truly need", "internal need", "need"),
			list("motivations", "why they pursue it", "motivation"),
			list("obstacles", "what stands in the way", "obstacle"),
		),
	},
	EnhancementVoice: {
		Focus: "Define how the character speaks: rhythm, vocabulary, verbal habits and what they never say aloud.",
		Shape: describedShape(
			list("speechPatterns", "patterns in how they talk", "speech pattern", "pattern"),
			text("vocabulary", "word choice and register", "vocabulary", "word choice"),
			list("catchphrases", "recurring phrases", "catchphrase", "phrase"),
			list("sampleDialogue", "three short sample lines", "sample", "dialogue"),
		),
	},
	EnhancementRelationships: {
		Focus: "Map the character's relationships: allies, rivals, family and the tensions that bind them to the cast.",
		Shape: describedShape(
			list("relationships", "each relationship as 'Name: dynamic'", "relationship"),
			list("alliances", "who they can rely on", "alliance", "ally", "allies"),
			list("conflicts", "interpersonal conflicts", "conflict", "rival"),
		),
	},
	EnhancementArc: {
		Focus: "Design the character's arc: who they are at the start, the turning points that test them, and who they become.",
		Shape: describedShape(
			text("startingPoint", "who they are at the beginning", "starting point", "beginning", "start"),
			list("turningPoints", "moments that force change", "turning point"),
			text("endingPoint", "who they become", "ending point", "ending", "end state"),
			list("lessons", "what they learn", "lesson"),
		),
	},
	EnhancementComprehensive: {
		Focus: "Give the character a comprehensive pass covering appearance, personality, history, goals, voice and arc.",
		Shape: describedShape(
			text("appearance", "physical appearance", "appearance", "physical"),
			text("personality", "personality", "personality"),
			text("backstory", "backstory", "backstory", "background"),
			list("goals", "goals and motivations", "goal", "motivation"),
			text("voice", "how they speak", "voice", "speech"),
			text("arc", "their arc", "arc"),
		),
	},
}

// WorldElementTemplates 世界观元素子模板
var WorldElementTemplates = map[ElementType]Template{
	ElementLocation: {
		Focus: "Create a vivid location: its geography, atmosphere, who lives there and why it matters to the story.",
		Shape: describedShape(
			text("geography", "terrain, layout and climate", "geography", "terrain", "climate"),
			list("inhabitants", "who lives or gathers there", "inhabitant", "population", "resident"),
			list("landmarks", "notable landmarks", "landmark"),
			text("history", "relevant history", "history"),
			text("significance", "its importance to the plot", "significance", "importance"),
		),
	},
	ElementMagicSystem: {
		Focus: "Design a coherent magic system: where the power comes from, its rules, its costs and who can wield it.",
		Shape: describedShape(
			text("source", "where the magic comes from", "source"),
			list("rules", "how the magic works", "rule"),
			list("limitations", "hard limits", "limitation", "limit"),
			list("costs", "what using it costs", "cost", "price"),
			text("practitioners", "who can use it and how they learn", "practitioner", "wielder"),
		),
	},
	ElementTechnology: {
		Focus: "Describe a technology: what it does, how it works, who controls it and how it reshapes society.",
		Shape: describedShape(
			text("function", "what it does and how", "function", "how it works"),
			text("origin", "who created it and when", "origin", "inventor"),
			list("limitations", "constraints and failure modes", "limitation"),
			text("societalImpact", "how it changes society", "impact", "society"),
			text("availability", "who has access", "availability", "access"),
		),
	},
	ElementCulture: {
		Focus: "Build a culture: its values, customs, beliefs, social order and the fault lines within it.",
		Shape: describedShape(
			list("values", "what the culture prizes", "value"),
			list("customs", "rituals and everyday customs", "custom", "ritual", "tradition"),
			text("beliefs", "religion or worldview", "belief", "religion"),
			text("socialStructure", "hierarchy and roles", "social structure", "hierarchy"),
			list("conflicts", "internal and external tensions", "conflict", "tension"),
		),
	},
	ElementHistory: {
		Focus: "Write a piece of world history: what happened, who shaped it and how its consequences echo into the story.",
		Shape: describedShape(
			list("timeline", "key events in order", "timeline", "event"),
			list("keyFigures", "people who shaped it", "key figure", "figure"),
			list("consequences", "lasting consequences", "consequence", "aftermath"),
			text("legacy", "how it is remembered today", "legacy", "remembered"),
		),
	},
	ElementOrganization: {
		Focus: "Create an organization: its purpose, structure, leadership, resources and relationships with other powers.",
		Shape: describedShape(
			text("purpose", "stated and hidden goals", "purpose", "goal"),
			text("structure", "how it is organized", "structure", "hierarchy"),
			list("leaders", "notable leaders", "leader"),
			list("resources", "what it controls", "resource"),
			list("relationships", "allies and enemies", "relationship", "allies", "enemies"),
		),
	},
	ElementItem: {
		Focus: "Describe a significant item: how it looks, where it came from, what it can do and what it costs to use.",
		Shape: describedShape(
			text("appearance", "what it looks like", "appearance", "looks"),
			text("origin", "where it came from", "origin", "history"),
			list("powers", "abilities or uses", "power", "abilit"),
			list("limitations", "limits and drawbacks", "limitation", "drawback"),
			text("currentLocation", "where it is now", "current location", "location"),
		),
	},
	ElementOther: {
		Focus: "Develop this world element in whatever form suits it best, grounding it in the book's genre and tone.",
		Shape: describedShape(
			list("details", "key details", "detail"),
			text("significance", "why it matters to the story", "significance", "importance"),
			list("connections", "links to characters, places or events", "connection"),
		),
	},
}

// AnalysisFocus 各分析类型的关注点
var AnalysisFocus = map[AnalysisType]string{
	AnalysisRelationships: "Analyze how these characters relate to one another: bonds, loyalties, power balances and unspoken tensions.",
	AnalysisConflicts:     "Identify the conflicts between and within these characters, and which ones carry the most story potential.",
	AnalysisDevelopment:   "Assess how well developed each character is and where their arcs, motivations or depth fall short.",
	AnalysisDynamics:      "Examine the group dynamics: roles each character plays in scenes together, contrasts and chemistry.",
}

// ShapeFor 返回请求对应的输出契约，无结构化输出的意图返回 false
func ShapeFor(req Request) (Shape, bool) {
	switch r := req.(type) {
	case *OutlineRequest:
		return ChapterShape, true
	case *CharacterRequest:
		return CharacterShape, true
	case *CharacterAnalysisRequest:
		return AnalysisShape, true
	case *CharacterEnhancementRequest:
		return EnhancementTemplate(r.EnhancementType).Shape, true
	case *WorldbuildingRequest:
		return WorldElementTemplate(r.ElementType).Shape, true
	default:
		return Shape{}, false
	}
}

// EnhancementTemplate 查找角色完善子模板，未知类型回退为 comprehensive
func EnhancementTemplate(t EnhancementType) Template {
	if tpl, ok := EnhancementTemplates[t]; ok {
		return tpl
	}
	return EnhancementTemplates[EnhancementComprehensive]
}

// WorldElementTemplate 查找世界观子模板，未知类型回退为 other
func WorldElementTemplate(t ElementType) Template {
	if tpl, ok := WorldElementTemplates[t]; ok {
		return tpl
	}
	return WorldElementTemplates[ElementOther]
}
