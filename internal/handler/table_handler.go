package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petit-bistro/service-reservation/internal/application"
	"github.com/petit-bistro/service-reservation/internal/middleware"
	"github.com/petit-bistro/service-reservation/internal/response"
)

// TableHandler handles HTTP requests for table reservations.
type TableHandler struct {
	service *application.ReservationService
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(service *application.ReservationService) *TableHandler {
	return &TableHandler{service: service}
}

// RegisterRoutes registers all reservation routes on the given router group.
func (h *TableHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	tables := r.Group("/api/v1/tables")
	tables.Use(authMW)
	{
		tables.GET("/vacant", h.ListVacant)
		tables.GET("/me", h.ListMine)
		tables.POST("/:id/book", h.Book)
		tables.PUT("/:id/booking", h.ChangeBooking)
		tables.DELETE("/:id/booking", h.CancelBooking)
	}
}

// ListVacant handles GET /api/v1/tables/vacant.
func (h *TableHandler) ListVacant(c *gin.Context) {
	result, err := h.service.ListVacant(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListMine handles GET /api/v1/tables/me.
func (h *TableHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.GetClient(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.ListByClient(c.Request.Context(), identity.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Book handles POST /api/v1/tables/:id/book.
func (h *TableHandler) Book(c *gin.Context) {
	tableID, err := parseTableID(c)
	if err != nil {
		response.BadRequest(c, "invalid table ID")
		return
	}

	identity, ok := middleware.GetClient(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.BookTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Book(c.Request.Context(), tableID, identity.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ChangeBooking handles PUT /api/v1/tables/:id/booking.
func (h *TableHandler) ChangeBooking(c *gin.Context) {
	tableID, err := parseTableID(c)
	if err != nil {
		response.BadRequest(c, "invalid table ID")
		return
	}

	identity, ok := middleware.GetClient(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.ChangeBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ChangeBooking(c.Request.Context(), tableID, identity.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelBooking handles DELETE /api/v1/tables/:id/booking.
func (h *TableHandler) CancelBooking(c *gin.Context) {
	tableID, err := parseTableID(c)
	if err != nil {
		response.BadRequest(c, "invalid table ID")
		return
	}

	identity, ok := middleware.GetClient(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.CancelBooking(c.Request.Context(), tableID, identity.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func parseTableID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
