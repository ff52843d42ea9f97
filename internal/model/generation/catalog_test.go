package generation

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {
	Convey("子模板表覆盖全部枚举值", t, func() {
		So(len(EnhancementTemplates), ShouldEqual, 8)
		for _, et := range EnhancementTypes {
			tpl, ok := EnhancementTemplates[et]
			So(ok, ShouldBeTrue)
			So(tpl.Focus, ShouldNotBeEmpty)
			So(tpl.Shape.Summary, ShouldEqual, "description")
		}

		So(len(WorldElementTemplates), ShouldEqual, 8)
		for _, et := range ElementTypes {
			tpl, ok := WorldElementTemplates[et]
			So(ok, ShouldBeTrue)
			So(tpl.Focus, ShouldNotBeEmpty)
		}

		So(len(AnalysisFocus), ShouldEqual, len(AnalysisTypes))
	})

	Convey("未知类型回退到兜底模板", t, func() {
		So(EnhancementTemplate("telepathy").Focus, ShouldEqual, EnhancementTemplates[EnhancementComprehensive].Focus)
		So(WorldElementTemplate("weather").Focus, ShouldEqual, WorldElementTemplates[ElementOther].Focus)
	})

	Convey("每个契约的 Required 和 Summary 都是已声明字段", t, func() {
		shapes := []Shape{ChapterShape, CharacterShape, AnalysisShape}
		for _, tpl := range EnhancementTemplates {
			shapes = append(shapes, tpl.Shape)
		}
		for _, tpl := range WorldElementTemplates {
			shapes = append(shapes, tpl.Shape)
		}
		for _, s := range shapes {
			_, ok := s.Field(s.Summary)
			So(ok, ShouldBeTrue)
			for _, key := range s.Required {
				_, ok := s.Field(key)
				So(ok, ShouldBeTrue)
			}
		}
	})

	Convey("ShapeFor 按子类型选择契约", t, func() {
		shape, ok := ShapeFor(&WorldbuildingRequest{ElementType: ElementMagicSystem})
		So(ok, ShouldBeTrue)
		_, hasCosts := shape.Field("costs")
		So(hasCosts, ShouldBeTrue)

		shape, ok = ShapeFor(&CharacterEnhancementRequest{EnhancementType: EnhancementVoice})
		So(ok, ShouldBeTrue)
		_, hasCatchphrases := shape.Field("catchphrases")
		So(hasCatchphrases, ShouldBeTrue)

		_, ok = ShapeFor(&SynopsisRequest{})
		So(ok, ShouldBeFalse)
	})
}

func TestIntent(t *testing.T) {
	Convey("意图列表", t, func() {
		So(len(AllIntents), ShouldEqual, 13)
		for _, intent := range AllIntents {
			So(intent.IsValid(), ShouldBeTrue)
			req, ok := NewRequest(intent)
			So(ok, ShouldBeTrue)
			So(req.Intent(), ShouldEqual, intent)

			_, hasShape := ShapeFor(req)
			So(hasShape, ShouldEqual, intent.HasStructuredOutput())
		}
		So(Intent("poem").IsValid(), ShouldBeFalse)
		So(SupportedIntentList(), ShouldStartWith, "synopsis, outline, character, ")
	})
}
