// =============================================================================
// Travel Voucher Generator - Client Document Reader
// =============================================================================
//
// Extracts the paragraph text of a client confirmation document. A .docx
// file is a zip archive whose word/document.xml carries the text as <w:t>
// runs inside <w:p> paragraphs; only the text matters here, so the XML is
// walked with a token decoder instead of a full OOXML model. Plain .txt
// files are accepted too, one paragraph per line.
//
// =============================================================================

package clientfile

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractParagraphs returns the trimmed paragraph texts of a client
// document in order. Empty paragraphs are kept because the name parser uses
// blank lines as section boundaries.
func ExtractParagraphs(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return docxParagraphs(path)
	case ".txt":
		return txtParagraphs(path)
	default:
		return nil, fmt.Errorf("unsupported client file type: %s", filepath.Ext(path))
	}
}

func txtParagraphs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read client file: %w", err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines, nil
}

func docxParagraphs(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open client document %s: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to read document body: %w", err)
		}
		defer rc.Close()
		return decodeParagraphs(rc)
	}

	return nil, fmt.Errorf("client document %s has no body", path)
}

// decodeParagraphs walks the document XML collecting the text runs of each
// paragraph element.
func decodeParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		buf        strings.Builder
		inPara     bool
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				buf.Reset()
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					buf.WriteByte('\t')
				}
			case "br":
				if inPara {
					buf.WriteByte(' ')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				paragraphs = append(paragraphs, strings.TrimSpace(buf.String()))
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		}
	}

	return paragraphs, nil
}
