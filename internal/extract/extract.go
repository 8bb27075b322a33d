// Package extract turns resume documents into plain text. The extractor
// routes by file extension: PDF, DOCX, plain text and markdown are
// supported.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/unidoc/unioffice/document"

	"resumescreen/internal/errors"
)

// SupportedExtensions lists the resume file extensions the extractor accepts
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt", ".md"}
}

// IsSupported reports whether the file's extension has an extractor
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}

// Text extracts the plain text content of a resume document
func Text(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("file does not exist: %s", path), err)
		}
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("cannot access file: %s", path), err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return pdfText(path)
	case ".docx":
		return docxText(path)
	case ".txt", ".md":
		return plainText(path)
	default:
		return "", errors.NewIOError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported file format: %s", ext), nil).
			WithContext("file", path)
	}
}

func plainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("failed to read file: %s", path), err)
	}
	return string(data), nil
}

func pdfText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("failed to open PDF: %s", path), err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("failed to stat PDF: %s", path), err)
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return "", errors.NewParseError(errors.ErrCodeParseFailed,
			fmt.Sprintf("failed to read PDF structure: %s", path), err)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single damaged page should not sink the document
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	out := text.String()
	if strings.TrimSpace(out) == "" {
		return "", errors.NewParseError(errors.ErrCodeParseFailed,
			fmt.Sprintf("no extractable text in PDF: %s", path), nil)
	}
	return out, nil
}

func docxText(path string) (string, error) {
	text, err := docxTextUnioffice(path)
	if err == nil {
		return text, nil
	}

	// unioffice may refuse unlicensed or slightly malformed files;
	// a raw zip/XML pass handles most of those
	fallback, fbErr := docxTextZip(path)
	if fbErr != nil {
		return "", errors.NewParseError(errors.ErrCodeParseFailed,
			fmt.Sprintf("failed to extract DOCX text: %s", path), err).
			WithContext("fallback_error", fbErr.Error())
	}
	return fallback, nil
}

func docxTextUnioffice(path string) (string, error) {
	doc, err := document.Open(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var text strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			text.WriteString(run.Text())
		}
		text.WriteString("\n")
	}
	return text.String(), nil
}

// docxTextZip reads the document as a zip archive and collects the
// text nodes of word/document.xml.
func docxTextZip(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "t" {
			var content string
			if err := decoder.DecodeElement(&content, &se); err == nil {
				sb.WriteString(content)
				sb.WriteString(" ")
			}
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no text content in document")
	}
	return out, nil
}
