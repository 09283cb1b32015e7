package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/koscheiundead/totkaa-v2/internal/domain"
)

// Issue is a single rejected field
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed owned-state validation.
// It unwraps to domain.ErrInvalidState.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
	}
	return fmt.Sprintf("%s: %s", domain.ErrMsgInvalidState, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidState
}

// Fields returns issues keyed by path, the shape handlers send back to clients
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Issues))
	for _, issue := range e.Issues {
		out[issue.Path] = issue.Message
	}
	return out
}

type issues []Issue

func (is *issues) add(path, format string, args ...interface{}) {
	*is = append(*is, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (is issues) err() error {
	if len(is) == 0 {
		return nil
	}
	sort.SliceStable(is, func(i, j int) bool { return is[i].Path < is[j].Path })
	return &ValidationError{Issues: is}
}
