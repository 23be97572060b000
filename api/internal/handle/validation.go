package handle

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"screen-solve/api/internal/solve/types"
)

// validationDetail renders a body binding error as a 422 detail list.
// obj is the struct the body was bound into; it is used to map field names
// back to their JSON keys.
func validationDetail(err error, obj any) types.ValidationErrorResponse {
	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		issues := make([]types.ValidationIssue, 0, len(verrs))
		for _, fe := range verrs {
			issue := types.ValidationIssue{
				Loc:  []string{"body", jsonFieldName(obj, fe.StructField())},
				Msg:  "Field required",
				Type: "missing",
			}
			if fe.Tag() != "required" {
				issue.Msg = "Failed '" + fe.Tag() + "' validation"
				issue.Type = fe.Tag()
			}
			issues = append(issues, issue)
		}
		return types.ValidationErrorResponse{Detail: issues}
	case errors.As(err, &typeErr):
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return issue(loc, "Input should be a valid "+typeErr.Type.String(), "type_error")
	case errors.As(err, &synErr):
		return issue([]string{"body"}, "JSON decode error: "+synErr.Error(), "json_invalid")
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return issue([]string{"body"}, "Field required", "missing")
	default:
		return issue([]string{"body"}, err.Error(), "value_error")
	}
}

func issue(loc []string, msg, tp string) types.ValidationErrorResponse {
	return types.ValidationErrorResponse{Detail: []types.ValidationIssue{{Loc: loc, Msg: msg, Type: tp}}}
}

func jsonFieldName(obj any, structField string) string {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return structField
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return structField
	}
	return name
}
