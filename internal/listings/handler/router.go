package handler

import (
	"github.com/julienschmidt/httprouter"
)

func (h *ListingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/resource", h.Search)
	router.POST("/api/resource", h.Register)
	router.PATCH("/api/resource/:id", h.Update)
	router.DELETE("/api/resource/:id", h.Delete)

	router.POST("/api/resource/login", h.Login)
	router.POST("/api/resource/checkin", h.CheckIn)
	router.POST("/api/resource/checkout", h.CheckOut)
}
