package planner

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/daily-planner-api/internal/constants"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// TemplateTaskInput places a library task at a position of a template.
type TemplateTaskInput struct {
	TaskID uint64
	Order  int
}

// NormalizeTitle trims title and checks it is present and short enough.
func NormalizeTitle(field, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apierrors.NewValidationError(field, "Title is required")
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return "", apierrors.NewValidationError(field,
			fmt.Sprintf("Title must be at most %d characters", constants.MaxTitleLength))
	}
	return title, nil
}

// ValidateTemplateTasks checks template membership input: every entry names a
// task, has a non-negative order, and no task appears twice.
func ValidateTemplateTasks(inputs []TemplateTaskInput) error {
	seen := make(map[uint64]bool, len(inputs))
	for _, in := range inputs {
		if in.TaskID == 0 {
			return apierrors.NewValidationError("tasks", "Each task must have task_id and order")
		}
		if in.Order < 0 {
			return apierrors.NewValidationError("tasks", fmt.Sprintf("Order of task %d must not be negative", in.TaskID))
		}
		if seen[in.TaskID] {
			return apierrors.NewValidationError("tasks", fmt.Sprintf("Task %d appears more than once", in.TaskID))
		}
		seen[in.TaskID] = true
	}
	return nil
}

// NormalizeLabel trims and validates a label name and color. An empty color
// falls back to the default.
func NormalizeLabel(name, color string) (string, string, error) {
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)

	verr := &apierrors.ValidationError{}
	if name == "" {
		verr.Add("name", "Label name is required")
	} else if utf8.RuneCountInString(name) > constants.MaxLabelNameLength {
		verr.Add("name", fmt.Sprintf("Label name must be at most %d characters", constants.MaxLabelNameLength))
	}

	if color == "" {
		color = constants.DefaultLabelColor
	} else if !colorPattern.MatchString(color) {
		verr.Add("color", "Invalid color format. Use #RRGGBB")
	}

	if len(verr.Fields) > 0 {
		return "", "", verr
	}
	return name, color, nil
}
