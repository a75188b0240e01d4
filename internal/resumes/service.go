package resumes

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtracker-backend/internal/extract"
	"jobtracker-backend/internal/shared/metrics"
	"jobtracker-backend/internal/shared/storage/object"
	"jobtracker-backend/internal/shared/telemetry"
)

// Service stores résumé uploads and their extracted text.
type Service struct {
	Store object.Store
	Repo  Repo
	Now   func() time.Time
}

// NewService constructs a Service.
func NewService(store object.Store, repo Repo) *Service {
	return &Service{Store: store, Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// Upload saves the file, records it as the user's current résumé and extracts
// its text. Extraction failures are logged and do not fail the upload.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Resume, error) {
	fileName = strings.TrimSpace(fileName)
	if userID == "" || fileName == "" {
		return Resume{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	obj, err := s.Store.Put(ctx, userID, fileName, r)
	if err != nil {
		return Resume{}, fmt.Errorf("store resume: %w", err)
	}

	res := Resume{
		ID:              uuid.NewString(),
		UserID:          userID,
		FileName:        fileName,
		MimeType:        obj.MimeType,
		SizeBytes:       obj.Size,
		StorageProvider: s.Store.Provider(),
		StorageKey:      obj.Key,
		CreatedAt:       s.now(),
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, fmt.Errorf("create resume: %w", err)
	}
	metrics.IncResumeUploaded()

	if _, key, err := extract.ExtractText(ctx, s.Store, res.StorageKey, res.MimeType, res.FileName); err != nil {
		telemetry.Warn("resume.extract_failed", map[string]any{
			"resume_id": res.ID,
			"user_id":   userID,
			"mime_type": res.MimeType,
			"error":     err.Error(),
		})
	} else {
		at := s.now()
		if err := s.Repo.UpdateExtraction(ctx, userID, res.ID, key, at); err != nil {
			telemetry.Warn("resume.extract_record_failed", map[string]any{
				"resume_id": res.ID,
				"error":     err.Error(),
			})
		} else {
			res.ExtractedTextKey = key
			res.ExtractedAt = &at
		}
	}
	return res, nil
}

// Current returns the user's newest résumé.
func (s *Service) Current(ctx context.Context, userID string) (Resume, error) {
	if userID == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetCurrentByUser(ctx, userID)
}

// List returns the user's résumés newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Text returns the extracted text of a résumé owned by userID.
func (s *Service) Text(ctx context.Context, userID, resumeID string) (string, error) {
	res, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return "", err
	}
	if res.ExtractedTextKey == "" {
		return "", ErrNoText
	}
	body, err := s.Store.Get(ctx, res.ExtractedTextKey)
	if err != nil {
		return "", fmt.Errorf("open extracted text: %w", err)
	}
	defer body.Close()
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	return string(raw), nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
