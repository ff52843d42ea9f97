package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	model "quill/internal/model/generation"
	"quill/internal/pkg/apperr"
)

// Validator 请求识别与字段校验
// 只返回第一个不满足的字段，不累积错误
type Validator struct {
	validate *validator.Validate
}

// NewValidator 创建校验器
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 错误路径使用 JSON 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.String {
			return strings.TrimSpace(field.String()) != ""
		}
		return !field.IsZero()
	})
	_ = v.RegisterValidation("chaptercount", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= model.MinChapters && n <= model.MaxChapters
	})

	return &Validator{validate: v}
}

// Validate 解析原始请求体并返回类型化请求
func (v *Validator) Validate(body []byte) (model.Request, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, apperr.InvalidRequest("request body must be a JSON object")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperr.InvalidRequest("request body must be a JSON object")
	}

	rawIntent, ok := envelope["intent"]
	if !ok {
		return nil, apperr.InvalidRequest("intent is required")
	}
	var intent model.Intent
	if err := json.Unmarshal(rawIntent, &intent); err != nil {
		return nil, apperr.InvalidRequest("intent must be a string")
	}

	req, ok := model.NewRequest(intent)
	if !ok {
		return nil, apperr.InvalidRequest(fmt.Sprintf(
			"unsupported intent %q; supported intents: %s", string(intent), model.SupportedIntentList()))
	}

	if err := json.Unmarshal(body, req); err != nil {
		return nil, apperr.InvalidRequest(decodeErrorMessage(err))
	}

	if err := v.validate.Struct(req); err != nil {
		return nil, apperr.InvalidRequest(fieldErrorMessage(err))
	}

	return req, nil
}

func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be of type %s", typeErr.Field, jsonTypeName(typeErr.Type))
	}
	return "request body is not valid JSON"
}

func jsonTypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Float64:
		return "number"
	case reflect.Slice:
		return "array"
	case reflect.Struct, reflect.Map, reflect.Ptr:
		return "object"
	default:
		return t.String()
	}
}

// fieldErrorMessage 只取第一个字段错误
func fieldErrorMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "invalid request"
	}

	fe := errs[0]
	path := fieldPath(fe)

	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s is required", path)
	case "chaptercount":
		if fe.Value() == 0 {
			return fmt.Sprintf("%s is required", path)
		}
		return fmt.Sprintf("%s must be between %d and %d", path, model.MinChapters, model.MaxChapters)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", path, strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", path, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", path, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", path)
	}
}

// fieldPath 去掉根结构体名，如 OutlineRequest.context.title -> context.title
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
