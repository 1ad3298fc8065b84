package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go-roadwatch/detection"
)

// ClassifyHandler forwards an image to the external damage classifier and
// returns its verdict. Any upstream problem surfaces as a single
// classification-failed error with no partial result.
func ClassifyHandler(c *gin.Context, classifier *detection.Client, logg *logrus.Logger) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read image file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read image file"})
		return
	}

	result, err := classifier.Classify(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		logg.WithError(err).Error("classification failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "classification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
