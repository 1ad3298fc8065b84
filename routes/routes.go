package routes

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"go-roadwatch/boundary"
	"go-roadwatch/config"
	"go-roadwatch/detection"
	"go-roadwatch/handlers"
	"go-roadwatch/stats"
	"go-roadwatch/storage"
	"googlemaps.github.io/maps"
)

// Deps holds the constructed clients handed into the handlers. All of them
// are built in main and injected here; handlers never reach for globals.
type Deps struct {
	Firestore  *firestore.Client
	Engine     *stats.Engine
	Boundaries *boundary.Store
	Images     *storage.ImageStore
	Maps       *maps.Client
	Classifier *detection.Client
	OpenAI     *openai.Client
	Bounds     config.GeoBounds
	Log        *logrus.Logger
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Roadwatch!",
		})
	})

	ingest := handlers.IngestDeps{
		Firestore: deps.Firestore,
		Engine:    deps.Engine,
		Images:    deps.Images,
		Maps:      deps.Maps,
		Bounds:    deps.Bounds,
		Log:       deps.Log,
	}

	// api routes
	api := r.Group("/api/roadwatch")
	{
		api.GET("/kabupaten-stats", func(c *gin.Context) {
			handlers.RegencyStatsHandler(c, deps.Engine, deps.Log)
		})
		api.GET("/kecamatan-stats", func(c *gin.Context) {
			handlers.DistrictStatsHandler(c, deps.Engine, deps.Log)
		})

		api.GET("/location/cities", func(c *gin.Context) {
			handlers.CitiesHandler(c, deps.Boundaries)
		})
		api.GET("/location/districts", func(c *gin.Context) {
			handlers.DistrictsHandler(c, deps.Boundaries)
		})
		api.GET("/location/lookup", func(c *gin.Context) {
			handlers.LocationLookupHandler(c, deps.Boundaries)
		})

		api.GET("/road-damages", func(c *gin.Context) {
			handlers.ListReportsHandler(c, deps.Firestore, deps.Log)
		})
		api.POST("/road-damages", func(c *gin.Context) {
			handlers.CreateReportHandler(c, ingest)
		})

		api.POST("/classify", func(c *gin.Context) {
			handlers.ClassifyHandler(c, deps.Classifier, deps.Log)
		})
		api.GET("/summary", func(c *gin.Context) {
			handlers.ConditionSummaryHandler(c, deps.Engine, deps.OpenAI, deps.Log)
		})
	}

	return r
}
