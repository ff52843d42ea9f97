package booktools

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	model "quill/internal/model/generation"
)

var (
	// Chapter 1 / ## Chapter 1: Title / **Chapter 1 - Title**
	chapterHeading = regexp.MustCompile(`(?i)^\s*(?:#+\s*)?(?:\*\*|__)?\s*chapter\s+(\d+)\b(.*)$`)
	// 1. Title
	numberedHeading = regexp.MustCompile(`^\s*(?:#+\s*)?(?:\*\*|__)?\s*(\d+)\.\s+(.*)$`)
)

// chapterChunk 一个章节标题及其正文行
type chapterChunk struct {
	number int
	title  string
	lines  []string
}

// splitChapters 按章节标题切分
// 只要出现 "Chapter N" 形式的标题，就只认这种标题，避免把编号的情节点误认为章节
func splitChapters(text string) []chapterChunk {
	lines := strings.Split(text, "\n")

	pattern := numberedHeading
	for _, line := range lines {
		if chapterHeading.MatchString(line) {
			pattern = chapterHeading
			break
		}
	}

	var chunks []chapterChunk
	for _, line := range lines {
		if m := pattern.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			chunks = append(chunks, chapterChunk{number: n, title: headingTitle(m[2], n)})
			continue
		}
		if len(chunks) == 0 {
			// 第一个标题之前的引导语
			continue
		}
		last := &chunks[len(chunks)-1]
		last.lines = append(last.lines, line)
	}
	return chunks
}

// headingTitle 去掉标题中的分隔符和 markdown 标记，为空时使用 "Chapter N"
func headingTitle(rest string, n int) string {
	title := strings.TrimSpace(rest)
	title = strings.Trim(title, "*_ ")
	title = strings.TrimLeft(title, ":-–—. ")
	title = strings.TrimSpace(strings.Trim(title, "*_"))
	if title == "" {
		return fmt.Sprintf("Chapter %d", n)
	}
	return title
}

// scanOutline 从自由文本恢复章节列表
// 每个章节正文再经过段落扫描，情节点等小节落入对应列表
func scanOutline(text string) ([]model.ChapterOutline, bool) {
	chunks := splitChapters(text)
	if len(chunks) == 0 {
		return nil, false
	}

	chapters := make([]model.ChapterOutline, 0, len(chunks))
	for _, c := range chunks {
		body := strings.Join(c.lines, "\n")
		fallback := strings.TrimSpace(body)
		if fallback == "" {
			fallback = c.title
		}
		chapters = append(chapters, chapterFromScanner(c.title, scanSections(model.ChapterShape, body), fallback))
	}
	return chapters, true
}

// chapterFromScanner 组装章节，summary 为空时使用 fallback
func chapterFromScanner(title string, s *sectionScanner, fallback string) model.ChapterOutline {
	summary := s.Text("summary")
	if strings.TrimSpace(summary) == "" {
		summary = fallback
	}
	return model.ChapterOutline{
		Title:         title,
		Summary:       summary,
		PlotPoints:    s.Items("plotPoints"),
		CharacterArcs: s.Items("characterArcs"),
		Conflicts:     s.Items("conflicts"),
	}
}
