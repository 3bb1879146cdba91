// controllers/booking_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"training-backend/services"
	"training-backend/utils"
)

type BookingController struct {
	BookingSvc   *services.BookingService
	LifecycleSvc *services.LifecycleService
}

func NewBookingController(svc *services.BookingService, lc *services.LifecycleService) *BookingController {
	return &BookingController{BookingSvc: svc, LifecycleSvc: lc}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// GetBookings lists all bookings; with ?query= it behaves as a search.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query != "" {
		ctrl.search(c, query)
		return
	}

	list, err := ctrl.BookingSvc.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *BookingController) SearchBookings(c *gin.Context) {
	ctrl.search(c, strings.TrimSpace(c.Query("query")))
}

func (ctrl *BookingController) search(c *gin.Context, query string) {
	list, err := ctrl.BookingSvc.Search(query)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to search bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var in services.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.Create(in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAllocationExhausted),
			errors.Is(err, services.ErrSequenceExhausted):
			utils.JSONError(c, http.StatusConflict, err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in services.BookingUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.Update(id, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found")
		case errors.Is(err, services.ErrInvalidStatus):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to update booking")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(id); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

func (ctrl *BookingController) GetStatistics(c *gin.Context) {
	stats, err := ctrl.BookingSvc.Statistics()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute statistics")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

// AdvanceExpired triggers the lifecycle sweep on demand.
func (ctrl *BookingController) AdvanceExpired(c *gin.Context) {
	count, err := ctrl.LifecycleSvc.AdvanceExpired()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "sweep failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"advanced": count})
}
