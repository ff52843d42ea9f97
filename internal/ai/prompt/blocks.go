package prompt

import (
	"fmt"
	"strings"

	model "quill/internal/model/generation"
)

// block 上下文文本块，空值字段直接省略
type block struct {
	b strings.Builder
}

func (k *block) line(label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	fmt.Fprintf(&k.b, "%s: %s\n", label, value)
}

func (k *block) list(label string, items []string) {
	var kept []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return
	}
	fmt.Fprintf(&k.b, "%s:\n", label)
	for _, item := range kept {
		fmt.Fprintf(&k.b, "- %s\n", item)
	}
}

// passage 多行原文，使用分隔线包裹
func (k *block) passage(label, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	fmt.Fprintf(&k.b, "%s:\n\"\"\"\n%s\n\"\"\"\n", label, text)
}

func (k *block) empty() bool {
	return k.b.Len() == 0
}

// section 带标题输出，块为空时返回空字符串
func (k *block) section(title string) string {
	if k.empty() {
		return ""
	}
	return title + "\n" + k.b.String()
}

func (k *block) String() string {
	return k.b.String()
}

func characterLine(c model.CharacterSummary) string {
	s := strings.TrimSpace(c.Name)
	if role := strings.TrimSpace(c.Role); role != "" {
		s += " (" + role + ")"
	}
	if desc := strings.TrimSpace(c.Description); desc != "" {
		s += ": " + desc
	}
	return s
}

func elementLine(e model.ElementSummary) string {
	s := strings.TrimSpace(e.Name)
	if s == "" {
		return ""
	}
	if typ := strings.TrimSpace(e.Type); typ != "" {
		s += " [" + typ + "]"
	}
	if desc := strings.TrimSpace(e.Description); desc != "" {
		s += ": " + desc
	}
	return s
}

func characterLines(cs []model.CharacterSummary) []string {
	lines := make([]string, 0, len(cs))
	for _, c := range cs {
		lines = append(lines, characterLine(c))
	}
	return lines
}

func elementLines(es []model.ElementSummary) []string {
	lines := make([]string, 0, len(es))
	for _, e := range es {
		lines = append(lines, elementLine(e))
	}
	return lines
}

// bookBlock 书籍上下文
func bookBlock(ctx *model.BookContext) string {
	if ctx == nil {
		return ""
	}
	var k block
	k.line("Title", ctx.Title)
	k.line("Genre", ctx.Genre)
	k.line("Synopsis", ctx.Synopsis)
	k.list("Existing characters", characterLines(ctx.ExistingCharacters))
	k.list("Existing world elements", elementLines(ctx.ExistingElements))
	return k.section("Book context:")
}

// writingBlock 编辑器类意图的可选上下文
func writingBlock(ctx *model.WritingContext) string {
	if ctx == nil {
		return ""
	}
	var k block
	k.line("Title", ctx.Title)
	k.line("Genre", ctx.Genre)
	k.line("Synopsis", ctx.Synopsis)
	k.line("Chapter", ctx.ChapterTitle)
	k.line("Tone", ctx.Tone)
	k.line("Style", ctx.Style)
	k.list("Characters", characterLines(ctx.Characters))
	k.list("World elements", elementLines(ctx.WorldElements))
	k.passage("Preceding text", ctx.PrecedingText)
	k.passage("Following text", ctx.FollowingText)
	return k.section("Story context:")
}

// snapshotBlock 待完善角色的现有资料
func snapshotBlock(c *model.CharacterSnapshot) string {
	var k block
	k.line("Name", c.Name)
	k.line("Role", c.Role)
	k.line("Description", c.Description)
	k.line("Appearance", c.Appearance)
	k.line("Personality", c.Personality)
	k.line("Backstory", c.Backstory)
	k.line("Motivation", c.Motivation)
	return k.section("Current character profile:")
}

// join 拼接非空段落
func join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
