package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tuilachit/Careercompass/internal/service"
	"github.com/tuilachit/Careercompass/pkg/response"
)

func init() {
	// 校验错误的字段名使用 json / form 标签，与响应体字段保持一致
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	}
}

// respondBindError 将绑定错误转换为字段级 400 响应
func respondBindError(c *gin.Context, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		response.ValidationError(c, 10001, "参数校验失败", decodeErrorFields(err))
		return
	}

	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		name := fieldPath(fe.Namespace())
		fields[name] = append(fields[name], validationMessage(fe))
	}
	response.ValidationError(c, 10001, "参数校验失败", fields)
}

// decodeErrorFields 请求体解析失败时的字段错误，不回显 Go 类型信息
func decodeErrorFields(err error) map[string][]string {
	var ute *json.UnmarshalTypeError
	var se *json.SyntaxError
	switch {
	case errors.As(err, &ute) && ute.Field != "":
		return map[string][]string{ute.Field: {fmt.Sprintf("Incorrect type. Expected %s.", kindName(ute.Type))}}
	case errors.As(err, &ute):
		return map[string][]string{"non_field_errors": {"Invalid data. Expected a JSON object."}}
	case errors.As(err, &se), errors.Is(err, io.ErrUnexpectedEOF):
		return map[string][]string{"non_field_errors": {"JSON parse error."}}
	case errors.Is(err, io.EOF):
		return map[string][]string{"non_field_errors": {"No data provided."}}
	default:
		return map[string][]string{"non_field_errors": {"Invalid request body."}}
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "a list"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Ptr:
		return kindName(t.Elem())
	default:
		return "an object"
	}
}

// respondFieldError 业务层字段校验错误；非 FieldError 返回 false
func respondFieldError(c *gin.Context, code int, err error) bool {
	var fe *service.FieldError
	if !errors.As(err, &fe) {
		return false
	}
	response.ValidationError(c, code, fe.Error(), fe.Fields)
	return true
}

// fieldPath 去掉根结构体名："SubmitAssessmentRequest.answers[0].question_id" → "answers[0].question_id"
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return "Ensure this value is at least " + fe.Param() + "."
	case "max":
		return "Ensure this value is at most " + fe.Param() + "."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	case "alphanum":
		return "Only letters and digits are allowed."
	default:
		return "Invalid value (" + fe.Tag() + ")."
	}
}
