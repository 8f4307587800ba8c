package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"releaseapi/internal/service"
)

// HealthCheck reports whether the database dependency is reachable.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "Dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadInstaller handles the admin upload entry point (multipart form,
// field name: file). Optional form fields: version, release_notes, make_latest.
//
// @Summary Upload an installer build
// @Accept mpfd
// @Produce json
// @Router /admin-upload [post]
func UploadInstaller(svc service.ReleaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "No file provided")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		makeLatest := true
		if v := c.FormValue("make_latest"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "Invalid make_latest value")
			}
			makeLatest = b
		}

		res, err := svc.Upload(c.UserContext(), f, service.UploadParams{
			Filename:     fh.Filename,
			ContentType:  ct,
			Size:         fh.Size,
			Version:      c.FormValue("version"),
			ReleaseNotes: c.FormValue("release_notes"),
			MakeLatest:   makeLatest,
		})
		if err != nil {
			if errors.Is(err, service.ErrInvalidFileType) || errors.Is(err, service.ErrFileTooLarge) {
				return writeError(c, fiber.StatusBadRequest, err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":     true,
			"filePath":    res.Record.FilePath,
			"fileName":    res.Record.Filename,
			"fileSize":    res.FileSize,
			"version":     res.Record.Version,
			"downloadUrl": res.DownloadURL,
		})
	}
}

// ResolveDownload returns the current latest installer with a signed URL.
//
// @Summary Resolve the latest download target
// @Produce json
// @Router /download-app [get]
func ResolveDownload(svc service.ReleaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := svc.ResolveLatestDownload(c.UserContext())
		if err != nil {
			if errors.Is(err, service.ErrNoFilesAvailable) {
				return writeError(c, fiber.StatusNotFound, "No files available for download")
			}
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(info)
	}
}

// TotalDownloads returns the all-versions download total as a bare integer.
//
// @Summary Total download count
// @Produce json
// @Router /get-total-downloads [get]
func TotalDownloads(svc service.ReleaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.TotalDownloads(c.UserContext()))
	}
}

// ListVersions lists uploaded versions, newest first, with limit & offset.
//
// @Summary List release versions
// @Produce json
// @Router /versions [get]
func ListVersions(svc service.ReleaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return c.JSON(res)
	}
}

// PromoteVersion flips the latest pointer to the given version record.
//
// @Summary Promote a version to latest
// @Produce json
// @Router /versions/{id}/latest [post]
func PromoteVersion(svc service.ReleaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid id format")
		}
		if err := svc.SetLatest(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrVersionNotFound) {
				return writeError(c, fiber.StatusNotFound, "Version not found")
			}
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
