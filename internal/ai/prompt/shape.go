package prompt

import (
	"fmt"
	"strings"

	model "quill/internal/model/generation"
)

const jsonInstruction = "Respond with ONLY a valid JSON object in exactly this shape. " +
	"Use these field names verbatim, keep list fields as arrays of strings, " +
	"and do not wrap the JSON in code fences or add commentary before or after it:"

// renderShape 把输出契约渲染为字面 JSON 结构
// 列表字段渲染为单元素字符串数组，值为字段说明
func renderShape(s model.Shape, indent string) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range s.Fields {
		fmt.Fprintf(&b, "%s  %q: ", indent, f.Key)
		if f.List {
			fmt.Fprintf(&b, "[%q]", f.Hint)
		} else {
			fmt.Fprintf(&b, "%q", f.Hint)
		}
		if i < len(s.Fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
	return b.String()
}

// objectContract 对象型契约的完整说明
func objectContract(s model.Shape) string {
	return jsonInstruction + "\n" + renderShape(s, "") + "\n" + requiredNote(s)
}

// chaptersContract 大纲契约：chapters 数组，每项为一个章节记录
func chaptersContract(s model.Shape, chapters int) string {
	body := "{\n  \"chapters\": [\n    " + renderShape(s, "    ") + "\n  ]\n}"
	return jsonInstruction + "\n" + body + "\n" +
		fmt.Sprintf("The \"chapters\" array must contain exactly %d entries, in story order.", chapters) +
		"\n" + requiredNote(s)
}

func requiredNote(s model.Shape) string {
	if len(s.Required) == 0 {
		return ""
	}
	quoted := make([]string, len(s.Required))
	for i, k := range s.Required {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return "Always fill in " + strings.Join(quoted, " and ") + "; use an empty array for any list you cannot fill."
}
