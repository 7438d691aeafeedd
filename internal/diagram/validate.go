package diagram

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/json-to-c4/c4gen/internal/model"
)

// diagramValidate is the shared validator instance for architecture documents.
var diagramValidate *validator.Validate

func init() {
	diagramValidate = validator.New()
	diagramValidate.RegisterTagNameFunc(jsonFieldName)
	if err := diagramValidate.RegisterValidation("elementtype", validateElementType); err != nil {
		panic(fmt.Sprintf("diagram: register elementtype validation: %v", err))
	}
}

// jsonFieldName makes validation paths use the input field names.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validateElementType(fl validator.FieldLevel) bool {
	_, err := model.ParseType(fl.Field().String())
	return err == nil
}

// Validate checks the document against the architecture shape.
// It returns a *SchemaError for the first offending field, or nil.
func Validate(d *Diagram) error {
	if d == nil {
		return &SchemaError{Msg: "diagram is nil"}
	}
	err := diagramValidate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &SchemaError{
			Field:    fieldPath(fe.Namespace()),
			Expected: expectedShape(fe),
			Actual:   fe.Value(),
		}
	}
	return &SchemaError{Msg: err.Error()}
}

// fieldPath drops the root struct name from a validator namespace
// ("Diagram.nodes[0].type" -> "nodes[0].type").
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func expectedShape(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return "a list"
		}
		return "a non-empty string"
	case "elementtype":
		names := make([]string, 0, len(model.Types))
		for _, t := range model.Types {
			names = append(names, t.String())
		}
		return "one of [" + strings.Join(names, " ") + "]"
	default:
		return fmt.Sprintf("value satisfying %q", fe.Tag())
	}
}
