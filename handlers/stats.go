package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go-roadwatch/stats"
	"go-roadwatch/types"
)

// RegencyStatsHandler serves per-kabupaten aggregates. With ?kode= or
// ?kabupaten= it returns a single region (404 on unknown code/name, which is
// not the same as a known region with zero reports); with no filter it returns
// every region plus the province summary.
func RegencyStatsHandler(c *gin.Context, engine *stats.Engine, logg *logrus.Logger) {
	regionStats(c, engine, logg, types.GranularityRegency, "kabupaten", "Kabupaten not found")
}

// DistrictStatsHandler is the kecamatan-granularity view. Computed
// independently of the regency view, never derived from it.
func DistrictStatsHandler(c *gin.Context, engine *stats.Engine, logg *logrus.Logger) {
	regionStats(c, engine, logg, types.GranularityDistrict, "kecamatan", "Kecamatan not found")
}

func regionStats(
	c *gin.Context,
	engine *stats.Engine,
	logg *logrus.Logger,
	g types.Granularity,
	nameParam, notFoundMsg string,
) {
	ctx := c.Request.Context()

	if kode := c.Query("kode"); kode != "" {
		item, err := engine.Region(ctx, g, kode)
		if err != nil {
			respondStatsError(c, logg, err, notFoundMsg)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
		return
	}

	if name := c.Query(nameParam); name != "" {
		item, err := engine.RegionByName(ctx, g, name)
		if err != nil {
			respondStatsError(c, logg, err, notFoundMsg)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
		return
	}

	var (
		items map[string]types.RegionStatsItem
		err   error
	)
	if g == types.GranularityDistrict {
		items, err = engine.AggregateByDistrict(ctx)
	} else {
		items, err = engine.AggregateByRegency(ctx)
	}
	if err != nil {
		logg.WithError(err).Error("failed to aggregate region stats")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch statistics"})
		return
	}

	list := make([]types.RegionStatsItem, 0, len(items))
	for _, item := range items {
		list = append(list, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": stats.Summarize(items),
		"data":    list,
	})
}

func respondStatsError(c *gin.Context, logg *logrus.Logger, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, stats.ErrRegionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": notFoundMsg})
	case errors.Is(err, stats.ErrAmbiguousName):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Region name matches more than one region"})
	default:
		logg.WithError(err).Error("failed to fetch region stats")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch statistics"})
	}
}
