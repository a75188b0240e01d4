package object

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen covers the zip directory probe mimetype needs to tell DOCX from plain zip.
const sniffLen = 3072

// ErrInvalidKey is returned for keys that escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// Object describes a stored upload.
type Object struct {
	Key      string
	Size     int64
	MimeType string
}

// Store saves and retrieves uploaded files and their derived artifacts.
type Store interface {
	// Put stores an upload under a fresh key in the owner's namespace.
	Put(ctx context.Context, ownerID, fileName string, r io.Reader) (Object, error)
	// PutKey writes r at a caller-chosen key, replacing any existing object.
	PutKey(ctx context.Context, key, contentType string, r io.Reader) (int64, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Provider names the backend ("local" or "s3").
	Provider() string
}

// Sniff detects the content type from the head of r and returns a reader
// that replays it.
func Sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head = head[:n]
	return mimetype.Detect(head).String(), io.MultiReader(bytes.NewReader(head), r), nil
}
