package project

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	oerrors "github.com/boomcli/boom/internal/errors"
)

// Field is a context variable collected from the user.
type Field struct {
	Key     string
	Prompt  string
	Pattern *regexp.Regexp
	MinLen  int
	Message string
}

// Check validates value against the field rules.
func (f Field) Check(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", f.Key)
	}
	if f.MinLen > 0 && len(value) < f.MinLen {
		return fmt.Errorf("%s", f.Message)
	}
	if f.Pattern != nil && !f.Pattern.MatchString(value) {
		return fmt.Errorf("%s", f.Message)
	}
	return nil
}

// Fields lists the user-supplied variables in collection order.
var Fields = []Field{
	{
		Key:     KeyProjectName,
		Prompt:  "What's the name of your project?",
		Pattern: regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9 ]{2,}$`),
		Message: "project name must start with a letter, contain only letters, digits and spaces, and be at least 3 characters",
	},
	{
		Key:     KeyProjectNamePath,
		Prompt:  "Package name:",
		Pattern: regexp.MustCompile(`^[a-zA-Z0-9_]{3,}$`),
		Message: "package name must contain only letters, digits or underscores and be at least 3 characters",
	},
	{
		Key:     KeyProjectDescription,
		Prompt:  "Description of your project:",
		MinLen:  20,
		Message: "description must be at least 20 characters long",
	},
	{
		Key:     KeyAuthorName,
		Prompt:  "Name of the author:",
		Pattern: regexp.MustCompile(`^[a-zA-Z ]{4,}$`),
		Message: "author name must contain only letters and spaces and be at least 4 characters",
	},
	{
		Key:     KeyAuthorURL,
		Prompt:  "URL to author page (usually a GitHub page):",
		Pattern: regexp.MustCompile(`^http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*(),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+$`),
		Message: "author URL must be a valid http or https URL",
	},
}

// FieldByKey returns the field definition for key.
func FieldByKey(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Pending returns, in collection order, the fields of values that are
// missing or invalid.
func Pending(values map[string]string) []Field {
	var pending []Field
	for _, f := range Fields {
		if f.Check(values[f.Key]) != nil {
			pending = append(pending, f)
		}
	}
	return pending
}

// Validate reports every missing or invalid required variable of c. The
// project root must be absolute and a template must be selected.
func (c Context) Validate() error {
	var problems []string
	var first string
	values := c.Values()
	for _, f := range Fields {
		if err := f.Check(values[f.Key]); err != nil {
			if first == "" {
				first = f.Key
			}
			problems = append(problems, err.Error())
		}
	}

	if root := values[KeyProjectRoot]; root == "" || !filepath.IsAbs(root) {
		if first == "" {
			first = KeyProjectRoot
		}
		problems = append(problems, "project_root must be an absolute path")
	}
	if c.template == nil {
		if first == "" {
			first = KeyTemplate
		}
		problems = append(problems, "no template selected")
	}

	if len(problems) == 0 {
		return nil
	}
	return oerrors.NewValidationError(strings.Join(problems, "; "), "", first,
		"Pass the missing values as flags or answer the prompts.")
}
