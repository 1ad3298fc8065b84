package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go-roadwatch/boundary"
	"go-roadwatch/types"
)

// LocationLookupHandler resolves a region code to a map center and bounding
// box. ?city= looks up level 2, ?district= level 3.
func LocationLookupHandler(c *gin.Context, store *boundary.Store) {
	cityCode := c.Query("city")
	districtCode := c.Query("district")

	if cityCode == "" && districtCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Either city or district code is required",
		})
		return
	}

	granularity := types.GranularityRegency
	code := cityCode
	if districtCode != "" {
		granularity = types.GranularityDistrict
		code = districtCode
	}

	loc, err := store.Lookup(granularity, code)
	switch {
	case errors.Is(err, boundary.ErrFeatureNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Location not found for code: " + code,
		})
	case errors.Is(err, boundary.ErrNoGeometry):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Could not calculate location coordinates",
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to lookup location",
		})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "data": loc})
	}
}

// CitiesHandler lists every kabupaten/kota for the location picker.
func CitiesHandler(c *gin.Context, store *boundary.Store) {
	c.JSON(http.StatusOK, gin.H{"data": store.Cities()})
}

// DistrictsHandler lists the kecamatan under ?code=<city code>.
func DistrictsHandler(c *gin.Context, store *boundary.Store) {
	cityCode := c.Query("code")
	if cityCode == "" {
		c.JSON(http.StatusOK, gin.H{"data": []types.Location{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": store.Districts(cityCode)})
}
