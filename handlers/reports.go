package handlers

import (
	"errors"
	"io"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go-roadwatch/config"
	"go-roadwatch/db"
	"go-roadwatch/geocode"
	"go-roadwatch/processor"
	"go-roadwatch/stats"
	"go-roadwatch/storage"
	"googlemaps.github.io/maps"
)

// IngestDeps carries everything the write path needs. Images and Maps are
// optional collaborators: when they fail (or are absent) the report is still
// persisted, just without the image or address fields.
type IngestDeps struct {
	Firestore *firestore.Client
	Engine    *stats.Engine
	Images    *storage.ImageStore
	Maps      *maps.Client
	Bounds    config.GeoBounds
	Log       *logrus.Logger
}

// ListReportsHandler returns point-level reports, optionally filtered to one
// kabupaten via ?kabupaten=<code>.
func ListReportsHandler(c *gin.Context, firestoreClient *firestore.Client, logg *logrus.Logger) {
	ctx := c.Request.Context()

	var (
		reports interface{}
		count   int
	)
	if kode := c.Query("kabupaten"); kode != "" {
		list, err := db.GetReportsByRegency(ctx, firestoreClient, kode)
		if err != nil {
			logg.WithError(err).Error("failed to fetch road damage reports")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch road damage data"})
			return
		}
		reports, count = list, len(list)
	} else {
		list, err := db.GetAllReports(ctx, firestoreClient)
		if err != nil {
			logg.WithError(err).Error("failed to fetch road damage reports")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch road damage data"})
			return
		}
		reports, count = list, len(list)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": reports})
}

// CreateReportHandler validates a submission, maps the raw detector class to
// the canonical severity, and persists the report with a transactionally
// assigned ID.
func CreateReportHandler(c *gin.Context, deps IngestDeps) {
	ctx := c.Request.Context()

	var sub processor.Submission
	if err := c.ShouldBind(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	report, err := processor.BuildReport(sub, deps.Bounds)
	if err != nil {
		var fieldErr processor.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   fieldErr.Error(),
				"field":   fieldErr.Field,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// Image upload is best-effort: a storage outage must not lose the report.
	if fileHeader, err := c.FormFile("image"); err == nil && deps.Images != nil {
		file, err := fileHeader.Open()
		if err != nil {
			deps.Log.WithError(err).Warn("failed to open uploaded image, saving report without image")
		} else {
			data, readErr := io.ReadAll(file)
			file.Close()
			if readErr != nil {
				deps.Log.WithError(readErr).Warn("failed to read uploaded image, saving report without image")
			} else {
				contentType := fileHeader.Header.Get("Content-Type")
				if contentType == "" {
					contentType = "image/jpeg"
				}
				ref, upErr := deps.Images.Upload(ctx, data, fileHeader.Filename, contentType)
				if upErr != nil {
					deps.Log.WithError(upErr).Warn("image upload failed, saving report without image")
				} else {
					report.ImageURL = ref.URL
					report.ImagePath = ref.Path
				}
			}
		}
	}

	// Address is display metadata; same degradation rule as images.
	if deps.Maps != nil {
		if address, err := geocode.ReverseGeocode(ctx, deps.Maps, report.Latitude, report.Longitude); err != nil {
			deps.Log.WithError(err).Debug("reverse geocode failed, saving report without address")
		} else {
			report.Address = address
		}
	}

	id, err := db.InsertReport(ctx, deps.Firestore, report)
	if err != nil {
		deps.Log.WithError(err).Error("failed to insert road damage report")
		// The report did not land; don't leave its image orphaned in the bucket.
		if report.ImagePath != "" && deps.Images != nil {
			if delErr := deps.Images.Delete(ctx, report.ImagePath); delErr != nil {
				deps.Log.WithError(delErr).Warn("failed to remove image for unsaved report")
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save road damage report"})
		return
	}
	report.ID = id

	// Keep the warm cache in step without a full recompute.
	deps.Engine.ApplyReport(ctx, report)

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"id":        id,
		"kerusakan": report.Severity,
	})
}
