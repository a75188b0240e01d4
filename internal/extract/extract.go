package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"jobtracker-backend/internal/shared/storage/object"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
	mimeZip  = "application/zip"

	docxBody = "word/document.xml"
)

// ErrUnsupported is returned for content types with no extractor.
var ErrUnsupported = errors.New("unsupported mime type")

var extractors = map[string]func([]byte) (string, error){
	mimePDF:  pdfText,
	mimeDOCX: docxText,
	mimeText: func(data []byte) (string, error) { return strings.TrimSpace(string(data)), nil },
}

// ExtractText reads a stored upload, extracts its text and stores the text
// next to the upload. It returns the text and the key it was saved under.
func ExtractText(ctx context.Context, store object.Store, fileKey, mimeType, fileName string) (string, string, error) {
	wrap := func(step string, err error) error {
		return fmt.Errorf("extract text key=%s mime=%s: %s: %w", fileKey, mimeType, step, err)
	}
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	body, err := store.Get(ctx, fileKey)
	if err != nil {
		return "", "", wrap("open", err)
	}
	raw, err := io.ReadAll(body)
	body.Close()
	if err != nil {
		return "", "", wrap("read", err)
	}

	text, err := ExtractTextFromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		return "", "", wrap("parse", err)
	}

	textKey := fileKey + object.ExtractedSuffix
	if _, err := store.PutKey(ctx, textKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", "", wrap("save", err)
	}
	return text, textKey, nil
}

// ExtractTextFromBytes extracts text from an in-memory résumé payload.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	kind := detectKind(mimeType, fileName, data)
	fn, ok := extractors[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
	return fn(data)
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func docxText(data []byte) (string, error) {
	f := zipEntry(data, docxBody)
	if f == nil {
		return "", errors.New("docx: " + docxBody + " not found")
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return paragraphs(rc), nil
}

// paragraphs flattens WordprocessingML into text with one line per paragraph.
func paragraphs(r io.Reader) string {
	decoder := xml.NewDecoder(r)
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// detectKind resolves the extractor key. Browsers often send octet-stream or
// zip for résumé files, so the extension and archive contents break the tie.
func detectKind(mimeType, fileName string, data []byte) string {
	kind := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	ext := strings.ToLower(filepath.Ext(fileName))

	switch kind {
	case "", "application/octet-stream":
		switch ext {
		case ".pdf":
			return mimePDF
		case ".txt", ".md":
			return mimeText
		case ".docx":
			return mimeDOCX
		}
		return kind
	case mimeZip:
		if zipEntry(data, docxBody) != nil {
			return mimeDOCX
		}
	}
	return kind
}

func zipEntry(data []byte, name string) *zip.File {
	if len(data) == 0 {
		return nil
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == name {
			return f
		}
	}
	return nil
}
