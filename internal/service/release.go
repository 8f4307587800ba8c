package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"releaseapi/internal/config"
	"releaseapi/internal/model"
	"releaseapi/internal/repository"
	"releaseapi/internal/storage"
)

var (
	ErrReaderNil        = errors.New("reader is nil")
	ErrIDRequired       = errors.New("id is required")
	ErrInvalidFileType  = errors.New("invalid file type: only .dmg, .zip and .pkg installers are accepted")
	ErrFileTooLarge     = errors.New("file too large: uploads are capped at 500 MiB")
	ErrNoFilesAvailable = errors.New("no files available for download")
	ErrVersionNotFound  = errors.New("version not found")
)

// Installer formats the distribution accepts, by extension and by declared MIME type.
var allowedExtensions = map[string]bool{
	".dmg": true,
	".zip": true,
	".pkg": true,
}

var allowedContentTypes = map[string]bool{
	"application/x-apple-diskimage":       true,
	"application/zip":                     true,
	"application/x-zip-compressed":        true,
	"multipart/x-zip":                     true,
	"application/vnd.apple.installer+xml": true,
	"application/x-xar":                   true,
}

// versionPattern extracts a semantic version triple from installer filenames
// shaped like CopyClipCloud_2.3.10.zip.
var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

const fallbackVersion = "1.0.0"

// UploadParams carries the caller-supplied metadata of an upload.
type UploadParams struct {
	Filename     string
	ContentType  string
	Size         int64
	Version      string
	ReleaseNotes string
	MakeLatest   bool
}

// UploadResult pairs the stored record with a freshly signed download URL for
// the new object.
type UploadResult struct {
	Record      *model.ReleaseVersion `json:"record"`
	FileSize    int64                 `json:"file_size"`
	DownloadURL string                `json:"download_url"`
}

// DownloadInfo is the resolved download target returned to clients.
type DownloadInfo struct {
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	Version     string `json:"version"`
	DownloadURL string `json:"downloadUrl"`
}

// VersionListResult is the service-level DTO for paginated version listings.
type VersionListResult struct {
	Items []model.ReleaseVersion `json:"data"`
	Total int                    `json:"total"`
}

// ReleaseService defines the use cases of the distribution subsystem.
type ReleaseService interface {
	// Upload validates the file, writes it to object storage, and inserts the
	// version record. When MakeLatest is set, the previous latest is demoted in
	// the same database transaction as the insert. A failed insert triggers a
	// compensating delete of the just-written object so no orphaned blob remains.
	Upload(ctx context.Context, r io.Reader, p UploadParams) (*UploadResult, error)

	// SetLatest promotes the version identified by id to the single latest record.
	SetLatest(ctx context.Context, id string) error

	// ResolveLatestDownload returns the flagged latest version with a signed
	// download URL and asynchronously counts the download.
	ResolveLatestDownload(ctx context.Context) (*DownloadInfo, error)

	// TotalDownloads returns the all-versions download total. It never fails the
	// caller: on aggregate failure it sums rows client-side, and on total failure
	// it returns 0.
	TotalDownloads(ctx context.Context) int64

	// List returns version records (newest first) using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*VersionListResult, error)
}

// releaseService is a concrete implementation of ReleaseService.
type releaseService struct {
	store     storage.Storage
	versions  repository.VersionRepository
	downloads repository.DownloadRepository

	product  string
	maxBytes int64
	urlTTL   time.Duration
}

// NewReleaseService constructs a new ReleaseService. All collaborators are
// injected; the service holds no package-level state.
func NewReleaseService(store storage.Storage, versions repository.VersionRepository, downloads repository.DownloadRepository, cfg config.ReleaseConfig) ReleaseService {
	s := &releaseService{
		store:     store,
		versions:  versions,
		downloads: downloads,
		product:   cfg.ProductName,
		maxBytes:  cfg.MaxUploadBytes,
		urlTTL:    time.Duration(cfg.DownloadURLTTLHours) * time.Hour,
	}
	if s.product == "" {
		s.product = "CopyClipCloud"
	}
	if s.maxBytes <= 0 {
		s.maxBytes = 500 * 1024 * 1024
	}
	if s.urlTTL <= 0 {
		s.urlTTL = 24 * time.Hour
	}
	return s
}

// validateFile enforces the type and size preconditions before any remote call.
// A file passes the type check if either its extension or its declared content
// type is on the allow-list. The size cap is inclusive: exactly maxBytes passes.
func (s *releaseService) validateFile(filename, contentType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] && !allowedContentTypes[strings.ToLower(contentType)] {
		return ErrInvalidFileType
	}
	if size > s.maxBytes {
		return ErrFileTooLarge
	}
	return nil
}

// extractVersion derives a semantic version from a filename, defaulting when
// no numeric triple is present.
func extractVersion(filename string) string {
	if m := versionPattern.FindString(filename); m != "" {
		return m
	}
	return fallbackVersion
}

func (s *releaseService) Upload(ctx context.Context, r io.Reader, p UploadParams) (*UploadResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if err := s.validateFile(p.Filename, p.ContentType, p.Size); err != nil {
		return nil, err
	}

	version := p.Version
	storedName := p.Filename
	var key string
	if version != "" {
		key = filepath.ToSlash(filepath.Join("versions", version, storedName))
	} else {
		// Server-generated variant: derive the version from the filename and
		// store under a timestamped name so repeated uploads never collide.
		version = extractVersion(p.Filename)
		ext := filepath.Ext(p.Filename)
		storedName = fmt.Sprintf("%s_%s%s", s.product, time.Now().UTC().Format("20060102T150405Z"), ext)
		key = storedName
	}

	// Upload to object storage; keys are write-once.
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        p.Size,
		ContentType: p.ContentType,
		NoOverwrite: true,
		Metadata: map[string]string{
			"original-filename": p.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	rec := &model.ReleaseVersion{
		ID:           uuid.New().String(),
		Version:      version,
		Filename:     p.Filename,
		FilePath:     objInfo.Key,
		ReleaseNotes: p.ReleaseNotes,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.versions.Create(ctx, rec, p.MakeLatest)
	if err != nil {
		// Rollback: delete the object from storage so the blob does not orphan.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	u, err := s.store.PresignGet(ctx, objInfo.Key, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("sign download url: %w", err)
	}

	return &UploadResult{
		Record:      stored,
		FileSize:    objInfo.Size,
		DownloadURL: u,
	}, nil
}

// SetLatest flips the latest pointer to the given record.
func (s *releaseService) SetLatest(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.versions.SetLatest(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVersionNotFound
		}
		return err
	}
	return nil
}

func (s *releaseService) ResolveLatestDownload(ctx context.Context) (*DownloadInfo, error) {
	v, err := s.versions.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoFilesAvailable
		}
		return nil, fmt.Errorf("query latest version: %w", err)
	}

	objInfo, err := s.store.Stat(ctx, v.FilePath)
	if err != nil {
		return nil, fmt.Errorf("stat latest object: %w", err)
	}

	u, err := s.store.PresignGet(ctx, v.FilePath, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("sign download url: %w", err)
	}

	// Telemetry is fire-and-forget: a failed increment never fails the download.
	go s.recordDownload(v.Version)

	return &DownloadInfo{
		FileName:    v.Filename,
		FileSize:    objInfo.Size,
		Version:     v.Version,
		DownloadURL: u,
	}, nil
}

// recordDownload increments the counter on a detached context so an abandoned
// request cannot cancel the write mid-flight.
func (s *releaseService) recordDownload(version string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.downloads.Increment(ctx, version); err != nil {
		logEvent("download_count_increment_failed", map[string]any{
			"version": version,
			"error":   err.Error(),
		})
	}
}

func (s *releaseService) TotalDownloads(ctx context.Context) int64 {
	total, err := s.downloads.Sum(ctx)
	if err == nil {
		return total
	}
	logEvent("download_total_aggregate_failed", map[string]any{"error": err.Error()})

	// Fallback: read the rows and sum client-side.
	counts, err := s.downloads.ListCounts(ctx)
	if err != nil {
		logEvent("download_total_fallback_failed", map[string]any{"error": err.Error()})
		return 0
	}
	var sum int64
	for _, c := range counts {
		sum += c.DownloadCount
	}
	return sum
}

// List returns paginated version records without exposing repository types.
func (s *releaseService) List(ctx context.Context, limit, offset int) (*VersionListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.versions.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &VersionListResult{Items: res.Items, Total: res.Total}, nil
}

// logEvent writes a one-line JSON log entry, matching the request logger format.
func logEvent(event string, fields map[string]any) {
	entry := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "error",
		"component": "service",
		"event":     event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
