package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for file extensions outside .pdf/.docx/.txt.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// Text extracts the full text of the file at path as a single string.
// The extension decides the parser. Read or parse failures of a supported
// type are logged and yield empty text, so callers can report "no text
// extracted" separately from "bad format".
func Text(path, extension string) (string, error) {
	switch strings.ToLower(extension) {
	case ".pdf":
		return fromPDF(path), nil
	case ".docx":
		return fromDOCX(path), nil
	case ".txt":
		return fromTXT(path), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, extension)
	}
}

// fromPDF concatenates per-page text with a newline between pages.
func fromPDF(path string) string {
	f, reader, err := pdf.Open(path)
	if err != nil {
		log.Printf("Error reading PDF %s: %v", path, err)
		return ""
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("Error reading PDF %s page %d: %v", path, i, err)
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// fromDOCX concatenates per-paragraph text with a newline between
// paragraphs. A .docx file is a zip container; the document body lives in
// word/document.xml with paragraphs as <w:p> and text runs as <w:t>.
func fromDOCX(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading DOCX %s: %v", path, err)
		return ""
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("Error reading DOCX %s: %v", path, err)
		return ""
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		log.Printf("Error reading DOCX %s: word/document.xml not found", path)
		return ""
	}

	rc, err := doc.Open()
	if err != nil {
		log.Printf("Error reading DOCX %s: %v", path, err)
		return ""
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		log.Printf("Error reading DOCX %s: %v", path, err)
		return ""
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				var v string
				_ = dec.DecodeElement(&v, &t)
				sb.WriteString(v)
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// fromTXT reads the whole file as UTF-8 text.
func fromTXT(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading TXT %s: %v", path, err)
		return ""
	}
	return string(data)
}
