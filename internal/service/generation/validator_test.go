package generation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	model "quill/internal/model/generation"
	"quill/internal/pkg/apperr"
)

func bookContext() map[string]any {
	return map[string]any{
		"title":    "The Stopped Clock",
		"synopsis": "A clockmaker discovers she can pause time.",
		"genre":    "Fantasy",
	}
}

type intentCase struct {
	body     map[string]any
	required []string
}

// validBodies 每个意图的最小合法请求及其必填字段路径
func validBodies() map[model.Intent]intentCase {
	ctxFields := []string{"context", "context.title", "context.synopsis", "context.genre"}
	return map[model.Intent]intentCase{
		model.IntentSynopsis: {
			body:     map[string]any{"idea": "A clockmaker who can pause time", "genre": "Fantasy"},
			required: []string{"idea", "genre"},
		},
		model.IntentOutline: {
			body:     map[string]any{"bookId": "b1", "chapters": 12, "structure": "three-act", "context": bookContext()},
			required: append([]string{"bookId", "chapters", "structure"}, ctxFields...),
		},
		model.IntentCharacter: {
			body:     map[string]any{"bookId": "b1", "name": "Mira", "role": "protagonist", "context": bookContext()},
			required: append([]string{"bookId", "name", "role"}, ctxFields...),
		},
		model.IntentCharacterEnhancement: {
			body: map[string]any{
				"characterId":     "c1",
				"enhancementType": "voice",
				"context":         map[string]any{"character": map[string]any{"name": "Mira"}},
			},
			required: []string{"characterId", "enhancementType", "context", "context.character", "context.character.name"},
		},
		model.IntentCharacterAnalysis: {
			body: map[string]any{
				"analysisType": "dynamics",
				"characters":   []any{map[string]any{"name": "Mira"}, map[string]any{"name": "Tobias"}},
			},
			required: []string{"analysisType", "characters"},
		},
		model.IntentWorldbuilding: {
			body:     map[string]any{"bookId": "b1", "elementType": "magic-system", "name": "Stillwork", "context": bookContext()},
			required: append([]string{"bookId", "elementType", "name"}, ctxFields...),
		},
		model.IntentChapterGeneration: {
			body:     map[string]any{"bookId": "b1", "context": bookContext()},
			required: append([]string{"bookId"}, ctxFields...),
		},
		model.IntentParagraphContinuation: {
			body:     map[string]any{"currentText": "The clock stopped."},
			required: []string{"currentText"},
		},
		model.IntentTextRewrite: {
			body:     map[string]any{"text": "It was dark.", "instruction": "make it ominous"},
			required: []string{"text", "instruction"},
		},
		model.IntentDialogueGeneration: {
			body:     map[string]any{"context": map[string]any{"situation": "Mira confronts her mentor"}},
			required: []string{"context", "context.situation"},
		},
		model.IntentDescriptionEnhancement: {
			body:     map[string]any{"text": "The shop was old."},
			required: []string{"text"},
		},
		model.IntentConsistencyCheck: {
			body:     map[string]any{"text": "Mira's eyes were blue.", "context": map[string]any{"genre": "Fantasy"}},
			required: []string{"text", "context"},
		},
		model.IntentWritingSuggestion: {
			body:     map[string]any{"text": "He walked slowly.", "suggestionType": "pacing"},
			required: []string{"text", "suggestionType"},
		},
	}
}

// deepCopy 通过 JSON 往返复制请求体
func deepCopy(m map[string]any) map[string]any {
	data, _ := json.Marshal(m)
	var out map[string]any
	_ = json.Unmarshal(data, &out)
	return out
}

// setPath 修改或删除（value 为 nil）嵌套字段
func setPath(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := m
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			return
		}
		cur = next
	}
	last := parts[len(parts)-1]
	if value == nil {
		delete(cur, last)
		return
	}
	cur[last] = value
}

func validateBody(v *Validator, intent model.Intent, body map[string]any) (model.Request, error) {
	body = deepCopy(body)
	body["intent"] = string(intent)
	data, _ := json.Marshal(body)
	return v.Validate(data)
}

func codeOf(err error) apperr.Code {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func TestValidator_AllIntents(t *testing.T) {
	v := NewValidator()
	cases := validBodies()

	Convey("全部 13 个意图", t, func() {
		So(len(cases), ShouldEqual, len(model.AllIntents))

		for _, intent := range model.AllIntents {
			tc := cases[intent]

			Convey(string(intent)+" 合法请求通过校验", func() {
				req, err := validateBody(v, intent, tc.body)
				So(err, ShouldBeNil)
				So(req.Intent(), ShouldEqual, intent)
			})

			for _, field := range tc.required {
				Convey(string(intent)+" 缺少 "+field+" 被拒绝", func() {
					body := deepCopy(tc.body)
					setPath(body, field, nil)
					req, err := validateBody(v, intent, body)
					So(req, ShouldBeNil)
					So(codeOf(err), ShouldEqual, apperr.CodeInvalidRequest)
					So(err.(*apperr.Error).Message, ShouldStartWith, field+" ")
				})
			}
		}
	})

	Convey("只含空白的字段视为缺失", t, func() {
		req, err := validateBody(v, model.IntentSynopsis, map[string]any{"idea": "   \n", "genre": "Fantasy"})
		So(req, ShouldBeNil)
		So(err.(*apperr.Error).Message, ShouldEqual, "idea is required")
	})

	Convey("不属于该意图的字段被忽略", t, func() {
		req, err := validateBody(v, model.IntentSynopsis, map[string]any{
			"idea": "A clockmaker", "genre": "Fantasy", "chapters": "not-a-number-but-ignored",
		})
		So(err, ShouldBeNil)
		So(req.(*model.SynopsisRequest).Idea, ShouldEqual, "A clockmaker")
	})
}

func TestValidator_Enumerations(t *testing.T) {
	v := NewValidator()
	cases := validBodies()

	Convey("枚举字段越界时列出合法取值", t, func() {
		tests := []struct {
			intent model.Intent
			field  string
			valid  []string
		}{
			{model.IntentOutline, "structure", []string{"three-act", "heros-journey", "custom"}},
			{model.IntentCharacterEnhancement, "enhancementType", enumStrings(model.EnhancementTypes)},
			{model.IntentWorldbuilding, "elementType", enumStrings(model.ElementTypes)},
			{model.IntentCharacterAnalysis, "analysisType", enumStrings(model.AnalysisTypes)},
		}

		for _, tt := range tests {
			body := deepCopy(cases[tt.intent].body)
			body[tt.field] = "interpretive-dance"
			_, err := validateBody(v, tt.intent, body)
			So(codeOf(err), ShouldEqual, apperr.CodeInvalidRequest)
			So(err.(*apperr.Error).Message, ShouldEqual, tt.field+" must be one of: "+strings.Join(tt.valid, ", "))

			for _, value := range tt.valid {
				body[tt.field] = value
				_, err := validateBody(v, tt.intent, body)
				So(err, ShouldBeNil)
			}
		}
	})

	Convey("章节数必须在 [5, 50]", t, func() {
		body := deepCopy(cases[model.IntentOutline].body)
		for _, n := range []int{3, 4, 51} {
			body["chapters"] = n
			_, err := validateBody(v, model.IntentOutline, body)
			So(err.(*apperr.Error).Message, ShouldEqual, "chapters must be between 5 and 50")
		}
		for _, n := range []int{5, 50} {
			body["chapters"] = n
			_, err := validateBody(v, model.IntentOutline, body)
			So(err, ShouldBeNil)
		}
	})

	Convey("角色列表不能为空", t, func() {
		body := deepCopy(cases[model.IntentCharacterAnalysis].body)
		body["characters"] = []any{}
		_, err := validateBody(v, model.IntentCharacterAnalysis, body)
		So(err.(*apperr.Error).Message, ShouldEqual, "characters must contain at least 1 item(s)")

		body["characters"] = []any{map[string]any{"role": "mentor"}}
		_, err = validateBody(v, model.IntentCharacterAnalysis, body)
		So(err.(*apperr.Error).Message, ShouldEqual, "characters[0].name is required")
	})

	Convey("可选的梗概篇幅也受枚举约束", t, func() {
		_, err := validateBody(v, model.IntentSynopsis, map[string]any{"idea": "x", "genre": "y", "length": "epic"})
		So(err.(*apperr.Error).Message, ShouldEqual, "length must be one of: short, medium, long")
	})
}

func TestValidator_Malformed(t *testing.T) {
	v := NewValidator()

	Convey("请求体格式错误", t, func() {
		tests := []struct {
			body string
			want string
		}{
			{``, "request body must be a JSON object"},
			{`[1,2]`, "request body must be a JSON object"},
			{`{"intent":`, "request body must be a JSON object"},
			{`{"idea":"x"}`, "intent is required"},
			{`{"intent": 7}`, "intent must be a string"},
			{`{"intent":"outline","bookId":"b","chapters":"ten"}`, "chapters must be of type number"},
		}
		for _, tt := range tests {
			_, err := v.Validate([]byte(tt.body))
			So(codeOf(err), ShouldEqual, apperr.CodeInvalidRequest)
			So(err.(*apperr.Error).Message, ShouldEqual, tt.want)
		}
	})

	Convey("未知意图列出全部支持的意图", t, func() {
		_, err := v.Validate([]byte(`{"intent":"poem"}`))
		msg := err.(*apperr.Error).Message
		So(msg, ShouldStartWith, `unsupported intent "poem"`)
		for _, intent := range model.AllIntents {
			So(msg, ShouldContainSubstring, string(intent))
		}
	})
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
