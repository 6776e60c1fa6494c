package document

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var (
	ErrIsDirectory = errors.New("path is a directory")
	ErrTooLarge    = errors.New("file exceeds maximum input size")
)

// Load reads the file at path as UTF-8 text. PDF files are text-extracted;
// everything else is taken as-is. maxSize <= 0 disables the size limit.
// Filesystem errors are returned as-is so callers can match fs.ErrNotExist
// and fs.ErrPermission.
func Load(path string, maxSize int64, log *slog.Logger) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return "", fmt.Errorf("%s is %d bytes (max %d): %w", path, info.Size(), maxSize, ErrTooLarge)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := extractText(path, content, log)
	if !utf8.ValidString(text) {
		log.Warn("input is not valid UTF-8, replacing invalid sequences", "path", path)
		text = strings.ToValidUTF8(text, "�")
	}
	return text, nil
}

// extractText returns the text of a PDF input, or the raw content for
// anything else and for PDFs that yield no text.
func extractText(path string, content []byte, log *slog.Logger) string {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return string(content)
	}
	text, err := extractPDF(content, log.With("path", path))
	if err != nil {
		log.Warn("pdf extraction failed, using raw bytes", "err", err, "path", path)
		return string(content)
	}
	return text
}

// extractPDF concatenates the plain text of every page. Pages that fail are
// logged and skipped; a document with no readable page is an error.
func extractPDF(content []byte, log *slog.Logger) (text string, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf reader panic: %v", rec)
		}
	}()

	doc, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	pages, extracted := doc.NumPage(), 0
	for n := 1; n <= pages; n++ {
		page := doc.Page(n)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn("skipping unreadable pdf page", "page", n, "err", err)
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
		extracted++
	}
	if extracted == 0 {
		return "", fmt.Errorf("no text found in %d pdf pages", pages)
	}
	log.Debug("pdf text extracted", "pages", pages, "extracted", extracted)
	return sb.String(), nil
}
