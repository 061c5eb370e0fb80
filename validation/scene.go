package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"connroute/core"
	"connroute/scene"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidScene is wrapped by every scene validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// Issue is one problem found in a scene.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// SceneError lists every issue found in a scene.
type SceneError struct {
	Issues []Issue
}

func (e *SceneError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.String()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidScene, strings.Join(parts, "; "))
}

func (e *SceneError) Unwrap() error {
	return ErrInvalidScene
}

// SceneValidator checks scenes before they are routed.
type SceneValidator struct {
	v *validator.Validate
}

// NewSceneValidator creates a validator with the scene rules registered.
func NewSceneValidator() *SceneValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	v.RegisterValidation("port_id", func(fl validator.FieldLevel) bool {
		return core.PortID(fl.Field().String()).Valid()
	})
	v.RegisterValidation("line_type", func(fl validator.FieldLevel) bool {
		lt := core.LineType(fl.Field().Int())
		return lt >= core.Straight && lt <= core.Curve
	})
	return &SceneValidator{v: v}
}

// Validate checks field rules and cross references: unique ids, connector
// ends that name existing shapes. It returns a *SceneError or nil.
func (sv *SceneValidator) Validate(s *scene.Scene) error {
	if s == nil {
		return fmt.Errorf("%w: nil scene", ErrInvalidScene)
	}

	var issues []Issue
	if err := sv.v.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidScene, err)
		}
		for _, fe := range verrs {
			issues = append(issues, Issue{Field: fieldPath(fe), Message: describe(fe)})
		}
	}
	issues = append(issues, crossReferences(s)...)

	if len(issues) > 0 {
		return &SceneError{Issues: issues}
	}
	return nil
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "finite":
		return "must be a finite number"
	case "port_id":
		return fmt.Sprintf("unknown port %q", fe.Value())
	case "line_type":
		return "unknown line type"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}

func crossReferences(s *scene.Scene) []Issue {
	var issues []Issue

	shapes := make(map[string]bool, len(s.Shapes))
	for i, sh := range s.Shapes {
		if sh.ID != "" && shapes[sh.ID] {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("shapes[%d].id", i),
				Message: fmt.Sprintf("duplicate shape id %q", sh.ID),
			})
		}
		shapes[sh.ID] = true
	}

	connectors := make(map[string]bool, len(s.Connectors))
	for i, c := range s.Connectors {
		if c.ID != "" && connectors[c.ID] {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("connectors[%d].id", i),
				Message: fmt.Sprintf("duplicate connector id %q", c.ID),
			})
		}
		connectors[c.ID] = true

		if c.FromID != "" && !shapes[c.FromID] {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("connectors[%d].fromId", i),
				Message: fmt.Sprintf("%s: %q", scene.ErrShapeNotFound, c.FromID),
			})
		}
		if c.ToID != "" && !shapes[c.ToID] {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("connectors[%d].toId", i),
				Message: fmt.Sprintf("%s: %q", scene.ErrShapeNotFound, c.ToID),
			})
		}
		if c.FromPort != core.PortNone && c.FromID == "" {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("connectors[%d].fromPort", i),
				Message: "port set on an unattached end",
			})
		}
		if c.ToPort != core.PortNone && c.ToID == "" {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("connectors[%d].toPort", i),
				Message: "port set on an unattached end",
			})
		}
	}
	return issues
}
