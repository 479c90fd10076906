package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "youthmind-portal/docs"
	"youthmind-portal/internal/api/handler"
	"youthmind-portal/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.Handler) {
	// Auth
	r.POST("/api/v1/auth/login", h.Login)
	r.POST("/api/v1/auth/logout", h.Logout)

	// Dataset lifecycle (admin)
	r.POST("/api/v1/dataset/upload", h.UploadDataset)
	r.GET("/api/v1/dataset", h.GetDataset)
	r.GET("/api/v1/dataset/file", h.DatasetFile)
	r.POST("/api/v1/dataset/history", h.ExportHistory)
	r.GET("/api/v1/dataset/history/range", h.HistoryRange)

	// Model service relays (admin)
	r.POST("/api/v1/predict", h.Predict)
	r.GET("/api/v1/models", h.Models)
	r.POST("/api/v1/train", h.Train)
	r.GET("/api/v1/train/stream", h.TrainStream)

	// End-user flow
	r.POST("/api/v1/user/predict", h.UserPredict)
	r.GET("/api/v1/user/history", h.UserHistory)

	// API docs
	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
