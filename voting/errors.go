package voting

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrDuplicateMenu = errors.New("menu already added for this restaurant today")
	ErrNotAnEmployee = errors.New("caller is not an employee")
	ErrMenuNotFound  = errors.New("menu not found")
	ErrNoMenuToday   = errors.New("no menus found for today")

	// ErrAlreadyVoted is raised by the repository when the per-day unique
	// index rejects a vote. The service folds it into VoteResult.
	ErrAlreadyVoted = errors.New("employee already voted today")
)

// ValidationError carries field-level messages for a rejected upload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid menu upload: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}
