package summarizer

import (
	"errors"
	"fmt"

	"meeting-summarizer/internal/console"
)

// Report prints the user-facing message for a failed summarization.
func Report(p console.Printer, err error) {
	var e *Error
	if !errors.As(err, &e) {
		p.Error(fmt.Sprintf("Unexpected error: %v", err))
		return
	}

	switch e.Kind {
	case KindMissingDependency:
		if errors.Is(e.Err, ErrModelNotPulled) {
			p.Error(fmt.Sprintf("Error: The model '%s' is not available in Ollama. Pull it with:", e.Model))
			p.Hint("ollama pull " + e.Model)
			return
		}
		p.Error(fmt.Sprintf("Error: %v", e.Err))
		p.Hint("Install Ollama from https://ollama.com, then start it with:", "  ollama serve")
	case KindFileNotFound:
		p.Error(fmt.Sprintf("Error: The file '%s' was not found. Please check the file path and try again.", e.Path))
	case KindPermissionDenied:
		p.Error(fmt.Sprintf("Error: Permission denied when accessing '%s'. Check your file permissions.", e.Path))
	case KindUnreadable:
		p.Error(fmt.Sprintf("Error: Could not read '%s': %v", e.Path, e.Err))
	case KindEmptyInput:
		p.Warn("Warning: The input file is empty. Please provide valid meeting minutes.")
	case KindServiceError:
		p.Error(fmt.Sprintf("Ollama Error: %v", e.Err))
	case KindMalformedResponse:
		p.Error("Error: Unexpected response format from the model.")
	case KindWriteFailed:
		p.Error(fmt.Sprintf("Error: Could not write the summary to '%s': %v", e.Path, e.Err))
	case KindInterrupted:
		p.Warn("Process interrupted by user (Ctrl + C). Exiting gracefully...")
	default:
		p.Error(fmt.Sprintf("Unexpected error: %v", e.Err))
	}
}
