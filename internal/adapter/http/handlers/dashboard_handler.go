package handlers

import (
	"context"
	"errors"
	"net/http"

	response "satici_paneli/internal/adapter/http/dto/response"
	"satici_paneli/internal/adapter/http/middleware"
	"satici_paneli/internal/usecase"
	"satici_paneli/pkg"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// DashboardHandler serves the point-in-time activity snapshot.

type DashboardHandler struct {
	usecase usecase.IDashboardUseCase
	logger  *log.Entry
}

func NewDashboardHandler(uc usecase.IDashboardUseCase) *DashboardHandler {
	return &DashboardHandler{
		usecase: uc,
		logger:  log.WithField("component", "dashboard_handler"),
	}
}

// GetDashboard computes today/week/month windows, pending and product counts,
// recent orders and the 7-day chart in one call. Any storage failure aborts
// the whole snapshot; no partial results are returned.
//
// @Summary  Dashboard snapshot
// @Tags     dashboard
// @Produce  json
// @Security Bearer
// @Success  200 {object} response.Envelope
// @Failure  500 {object} pkg.HTTPError
// @Router   /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	vendor, ok := middleware.VendorFromContext(c)
	if !ok {
		c.JSON(errAuthRequired.HTTPStatus, errAuthRequired.ToHTTPError())
		return
	}

	snapshot, err := h.usecase.GetDashboard(c.Request.Context(), vendor.ID)
	if err != nil {
		h.logger.WithField("vendor_id", vendor.ID).WithError(err).Error("dashboard aggregation failed")
		appErr := mapDashboardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OK(response.FromDashboard(snapshot)))
}

func mapDashboardError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidVendorID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Geçersiz istek", http.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return pkg.NewDomainError("STORAGE_UNAVAILABLE", "Depolama hizmetine şu anda ulaşılamıyor", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Dashboard verileri alınamadı", err, http.StatusInternalServerError)
	}
}
