package generation

// OutlineStructure 大纲结构
type OutlineStructure string

const (
	StructureThreeAct     OutlineStructure = "three-act"
	StructureHerosJourney OutlineStructure = "heros-journey"
	StructureCustom       OutlineStructure = "custom"
)

// EnhancementType 角色完善方向
type EnhancementType string

const (
	EnhancementPhysical      EnhancementType = "physical"
	EnhancementPersonality   EnhancementType = "personality"
	EnhancementBackstory     EnhancementType = "backstory"
	EnhancementGoals         EnhancementType = "goals"
	EnhancementVoice         EnhancementType = "voice"
	EnhancementRelationships EnhancementType = "relationships"
	EnhancementArc           EnhancementType = "arc"
	EnhancementComprehensive EnhancementType = "comprehensive"
)

// ElementType 世界观元素类型
type ElementType string

const (
	ElementLocation     ElementType = "location"
	ElementMagicSystem  ElementType = "magic-system"
	ElementTechnology   ElementType = "technology"
	ElementCulture      ElementType = "culture"
	ElementHistory      ElementType = "history"
	ElementOrganization ElementType = "organization"
	ElementItem         ElementType = "item"
	ElementOther        ElementType = "other"
)

// AnalysisType 角色分析类型
type AnalysisType string

const (
	AnalysisRelationships AnalysisType = "relationships"
	AnalysisConflicts     AnalysisType = "conflicts"
	AnalysisDevelopment   AnalysisType = "development"
	AnalysisDynamics      AnalysisType = "dynamics"
)

// SynopsisLength 梗概篇幅
type SynopsisLength string

const (
	LengthShort  SynopsisLength = "short"
	LengthMedium SynopsisLength = "medium"
	LengthLong   SynopsisLength = "long"
)

const (
	MinChapters = 5
	MaxChapters = 50
)

var (
	OutlineStructures = []OutlineStructure{StructureThreeAct, StructureHerosJourney, StructureCustom}

	EnhancementTypes = []EnhancementType{
		EnhancementPhysical, EnhancementPersonality, EnhancementBackstory, EnhancementGoals,
		EnhancementVoice, EnhancementRelationships, EnhancementArc, EnhancementComprehensive,
	}

	ElementTypes = []ElementType{
		ElementLocation, ElementMagicSystem, ElementTechnology, ElementCulture,
		ElementHistory, ElementOrganization, ElementItem, ElementOther,
	}

	AnalysisTypes = []AnalysisType{AnalysisRelationships, AnalysisConflicts, AnalysisDevelopment, AnalysisDynamics}

	SynopsisLengths = []SynopsisLength{LengthShort, LengthMedium, LengthLong}
)
