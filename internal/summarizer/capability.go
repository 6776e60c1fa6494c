package summarizer

import (
	"context"
	"fmt"
	"strings"

	"meeting-summarizer/internal/llm"
)

// CheckCapability verifies the local model service answers and hosts model.
// It returns a KindMissingDependency error otherwise.
func CheckCapability(ctx context.Context, client llm.Client, model string) error {
	names, err := client.Models(ctx)
	if err != nil {
		return &Error{Kind: KindMissingDependency, Model: model, Err: fmt.Errorf("%w: %w", ErrServiceUnavailable, err)}
	}
	if !hasModel(names, model) {
		return &Error{Kind: KindMissingDependency, Model: model, Err: ErrModelNotPulled}
	}
	return nil
}

// hasModel treats an untagged name as the ":latest" tag, as ollama does.
func hasModel(names []string, model string) bool {
	want := model
	if !strings.Contains(want, ":") {
		want += ":latest"
	}
	for _, name := range names {
		if name == model || name == want {
			return true
		}
	}
	return false
}
