package booktools

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	model "quill/internal/model/generation"
)

var outlineReq = &model.OutlineRequest{Chapters: 5, Structure: model.StructureThreeAct}

func TestDecodeOutline(t *testing.T) {
	Convey("章节标题扫描", t, func() {
		raw := `Chapter 1: The Start
Mira finds the broken clock in her grandfather's shop.
She winds it and the world goes silent.
Chapter 2: The Middle
The guild learns of her gift.`

		d := Decode(outlineReq, raw)
		So(d.Method, ShouldEqual, model.DecodeChapters)
		outline := d.Content.(model.Outline)
		So(len(outline.Chapters), ShouldEqual, 2)
		So(outline.Chapters[0].Title, ShouldEqual, "The Start")
		So(outline.Chapters[1].Title, ShouldEqual, "The Middle")
		for _, c := range outline.Chapters {
			So(c.Summary, ShouldNotBeEmpty)
			So(c.PlotPoints, ShouldNotBeNil)
			So(len(c.PlotPoints), ShouldEqual, 0)
		}
		So(outline.Chapters[0].Summary, ShouldContainSubstring, "broken clock")
	})

	Convey("章节内的小节落入列表字段", t, func() {
		raw := `Here is your outline.

## Chapter 1: Stillness
Mira discovers the gift.
**Plot Points:**
1. She winds the clock
2. Time stops
**Conflicts**
- Her fear of being found out

## Chapter 2
Consequences arrive.`

		outline := Decode(outlineReq, raw).Content.(model.Outline)
		So(len(outline.Chapters), ShouldEqual, 2)
		So(outline.Chapters[0].Title, ShouldEqual, "Stillness")
		So(outline.Chapters[0].Summary, ShouldEqual, "Mira discovers the gift.")
		So(outline.Chapters[0].PlotPoints, ShouldResemble, []string{"She winds the clock", "Time stops"})
		So(outline.Chapters[0].Conflicts, ShouldResemble, []string{"Her fear of being found out"})
		So(outline.Chapters[1].Title, ShouldEqual, "Chapter 2")
		So(outline.Chapters[1].Summary, ShouldEqual, "Consequences arrive.")
	})

	Convey("编号标题也能识别，出现 Chapter 标题时编号行不作为章节", t, func() {
		outline := Decode(outlineReq, "1. Arrival\nThey arrive.\n2. Departure\nThey leave.").Content.(model.Outline)
		So(len(outline.Chapters), ShouldEqual, 2)
		So(outline.Chapters[1].Title, ShouldEqual, "Departure")

		outline = Decode(outlineReq, "Chapter 1\nPlot points:\n1. a\n2. b").Content.(model.Outline)
		So(len(outline.Chapters), ShouldEqual, 1)
		So(outline.Chapters[0].PlotPoints, ShouldResemble, []string{"a", "b"})
	})

	Convey("合法 JSON 直接返回", t, func() {
		raw := "```json\n{\"chapters\":[{\"title\":\"One\",\"summary\":\"S\",\"plotPoints\":[\"p1\",\"p2\"]}]}\n```"
		d := Decode(outlineReq, raw)
		So(d.Method, ShouldEqual, model.DecodeJSON)
		outline := d.Content.(model.Outline)
		So(outline.Chapters[0].PlotPoints, ShouldResemble, []string{"p1", "p2"})
		So(outline.Chapters[0].Conflicts, ShouldResemble, []string{})

		d = Decode(outlineReq, `Sure! [{"title":"One","summary":"S","conflicts":"a\n- b"}]`)
		So(d.Method, ShouldEqual, model.DecodeJSON)
		So(d.Content.(model.Outline).Chapters[0].Conflicts, ShouldResemble, []string{"a", "b"})
	})

	Convey("缺少必需字段的 JSON 走文本兜底", t, func() {
		d := Decode(outlineReq, `{"chapters":[{"name":"One"}]}`)
		So(d.Method, ShouldNotEqual, model.DecodeJSON)
		So(len(d.Content.(model.Outline).Chapters), ShouldEqual, 1)
	})

	Convey("以冒号结尾的引导句切换到对应列表", t, func() {
		raw := "Chapter 1: The Start\nThe hero leaves home.\nThe key plot points of this chapter are as follows:\n- a\n- b\n- c"
		outline := Decode(outlineReq, raw).Content.(model.Outline)
		So(len(outline.Chapters), ShouldEqual, 1)
		So(outline.Chapters[0].Summary, ShouldEqual, "The hero leaves home.")
		So(outline.Chapters[0].PlotPoints, ShouldResemble, []string{"a", "b", "c"})
	})

	Convey("全部内容落入列表时 summary 仍有内容", t, func() {
		raw := "Conflicts: the war between the guilds escalates"
		d := Decode(outlineReq, raw)
		So(d.Method, ShouldEqual, model.DecodeSections)
		chapter := d.Content.(model.Outline).Chapters[0]
		So(chapter.Conflicts, ShouldResemble, []string{"the war between the guilds escalates"})
		So(chapter.Summary, ShouldEqual, raw)

		chapter = Decode(outlineReq, "Chapter 1\nPlot Points\n- a").Content.(model.Outline).Chapters[0]
		So(chapter.PlotPoints, ShouldResemble, []string{"a"})
		So(chapter.Summary, ShouldEqual, "Plot Points\n- a")

		chapter = Decode(outlineReq, "Chapter 1: Silence\nChapter 2: Noise\nThey argue.").Content.(model.Outline).Chapters[0]
		So(chapter.Summary, ShouldEqual, "Silence")
	})

	Convey("没有标题的散文成为单个章节", t, func() {
		d := Decode(outlineReq, "The story begins in a quiet town where nothing ever happens.")
		So(d.Method, ShouldEqual, model.DecodeRaw)
		outline := d.Content.(model.Outline)
		So(len(outline.Chapters), ShouldEqual, 1)
		So(outline.Chapters[0].Title, ShouldEqual, "Chapter 1")
		So(outline.Chapters[0].Summary, ShouldContainSubstring, "quiet town")
	})
}

func TestDecodeRecord(t *testing.T) {
	charReq := &model.CharacterRequest{Name: "Mira"}

	Convey("Plot Points 小节后的三个项目", t, func() {
		raw := "Plot Points\n- The clock stops\n- The guild arrives\n- Mira escapes"
		s := scanSections(model.ChapterShape, raw)
		So(s.Items("plotPoints"), ShouldResemble, []string{"The clock stops", "The guild arrives", "Mira escapes"})
	})

	Convey("结构化 JSON 原样返回", t, func() {
		d := Decode(charReq, `{"name":"Mira","description":"A clockmaker","extra":42}`)
		So(d.Method, ShouldEqual, model.DecodeJSON)
		rec := d.Content.(model.Record)
		So(rec["extra"], ShouldEqual, 42.0)

		d = Decode(charReq, `{"character":{"name":"Mira","description":"A clockmaker"}}`)
		So(d.Method, ShouldEqual, model.DecodeJSON)
		So(d.Content.(model.Record)["name"], ShouldEqual, "Mira")
	})

	Convey("分析结果中的引导句", t, func() {
		raw := "The cast is strong overall.\nHere are the main issues I found in this cast:\n- Mira lacks a flaw\n- The villain is vague\n- Pacing of arcs is uneven"
		d := Decode(&model.CharacterAnalysisRequest{}, raw)
		So(d.Method, ShouldEqual, model.DecodeSections)
		rec := d.Content.(model.Record)
		So(rec["issues"], ShouldResemble, []string{"Mira lacks a flaw", "The villain is vague", "Pacing of arcs is uneven"})
	})

	Convey("带标题的文本按段落扫描", t, func() {
		raw := `Mira Vance is a reclusive clockmaker.
Appearance: Tall, ink-stained fingers.
## Strengths
- Patient
- Precise
Weaknesses:
- Distrustful`

		d := Decode(charReq, raw)
		So(d.Method, ShouldEqual, model.DecodeSections)
		rec := d.Content.(model.Record)
		So(rec["description"], ShouldEqual, "Mira Vance is a reclusive clockmaker.")
		So(rec["appearance"], ShouldEqual, "Tall, ink-stained fingers.")
		So(rec["strengths"], ShouldResemble, []string{"Patient", "Precise"})
		So(rec["weaknesses"], ShouldResemble, []string{"Distrustful"})
		So(rec["fears"], ShouldResemble, []string{})
	})

	Convey("任意散文不会失败且填充描述字段", t, func() {
		inputs := []string{
			"She was born under a stopped clock, and the silence never left her.",
			"",
			"{not json at all",
			"```\nbroken fence",
			"- lonely bullet",
			strings.Repeat("word ", 1000),
		}
		for _, raw := range inputs {
			for _, req := range []model.Request{
				charReq,
				&model.CharacterAnalysisRequest{},
				&model.WorldbuildingRequest{ElementType: model.ElementCulture},
				&model.CharacterEnhancementRequest{EnhancementType: model.EnhancementArc},
			} {
				So(func() { Decode(req, raw) }, ShouldNotPanic)
				d := Decode(req, raw)
				rec, ok := d.Content.(model.Record)
				So(ok, ShouldBeTrue)
				shape, _ := model.ShapeFor(req)
				So(rec[shape.Summary], ShouldEqual, strings.TrimSpace(raw))
			}
			So(func() { Decode(outlineReq, raw) }, ShouldNotPanic)
			outline := Decode(outlineReq, raw).Content.(model.Outline)
			So(outline.Chapters, ShouldNotBeEmpty)
			if strings.TrimSpace(raw) != "" {
				So(outline.Chapters[0].Summary, ShouldNotBeEmpty)
			}
		}
	})

	Convey("无结构化契约的意图返回原文", t, func() {
		d := Decode(&model.SynopsisRequest{}, "  Once upon a time.  ")
		So(d.Method, ShouldEqual, model.DecodeText)
		So(d.Content, ShouldEqual, "Once upon a time.")
	})
}

func TestSectionScanner(t *testing.T) {
	Convey("状态转换表", t, func() {
		tests := []struct {
			line   string
			key    string
			inline string
			ok     bool
		}{
			{"Plot Points", "plotPoints", "", true},
			{"**Character Arcs:**", "characterArcs", "", true},
			{"### Conflicts", "conflicts", "", true},
			{"Conflict: the guild wants her gift", "conflicts", "the guild wants her gift", true},
			{"Summary: She runs.", "summary", "She runs.", true},
			{"- Plot point one", "", "", false},
			{"* Conflicts", "", "", false},
			{"He felt the conflict brewing.", "", "", false},
			{"The old plot points of the genre are tired and she knows that very well: really", "", "", false},
			{"The Start", "", "", false},
			{"The key plot points of this chapter are as follows:", "plotPoints", "", true},
			{"**These are the conflicts that drive the whole chapter forward:**", "conflicts", "", true},
			{"The weather in this quiet mountain town was cold that winter:", "", "", false},
		}
		s := newSectionScanner(model.ChapterShape)
		for _, tt := range tests {
			key, inline, ok := s.transition(tt.line)
			So(ok, ShouldEqual, tt.ok)
			So(key, ShouldEqual, tt.key)
			So(inline, ShouldEqual, tt.inline)
		}
	})

	Convey("最长关键词优先", t, func() {
		s := newSectionScanner(model.CharacterShape)
		key, _, ok := s.transition("Character Arc")
		So(ok, ShouldBeTrue)
		So(key, ShouldEqual, "arc")

		key, _, _ = s.transition("Background")
		So(key, ShouldEqual, "backstory")
	})
}

func TestTextStats(t *testing.T) {
	Convey("词数与阅读时间", t, func() {
		So(WordCount("  one two\tthree\nfour "), ShouldEqual, 4)
		So(WordCount(""), ShouldEqual, 0)

		text := strings.TrimSpace(strings.Repeat("word ", 600))
		So(WordCount(text), ShouldEqual, 600)
		So(ReadingTime(WordCount(text)), ShouldEqual, 3)
		So(ReadingTime(0), ShouldEqual, 0)
		So(ReadingTime(1), ShouldEqual, 1)
		So(ReadingTime(201), ShouldEqual, 2)
	})
}
