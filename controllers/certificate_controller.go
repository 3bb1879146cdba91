// controllers/certificate_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"training-backend/services"
	"training-backend/utils"
)

type CertificateController struct {
	CertificateSvc *services.CertificateService
}

func NewCertificateController(svc *services.CertificateService) *CertificateController {
	return &CertificateController{CertificateSvc: svc}
}

func (ctrl *CertificateController) GetCertificates(c *gin.Context) {
	certs, err := ctrl.CertificateSvc.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve certificates")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, certs)
}

func (ctrl *CertificateController) GetCertificate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	cert, err := ctrl.CertificateSvc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrCertificateNotFound) {
			utils.JSONError(c, http.StatusNotFound, "certificate not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve certificate")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cert)
}

func (ctrl *CertificateController) CreateCertificate(c *gin.Context) {
	var in services.CertificateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	cert, err := ctrl.CertificateSvc.Create(in)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create certificate")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, cert)
}

type IssueCertificatePayload struct {
	Achievement string `json:"achievement" binding:"required"`
}

// IssueForBooking records a completion certificate from a booking's client
// name and training date.
func (ctrl *CertificateController) IssueForBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload IssueCertificatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	cert, err := ctrl.CertificateSvc.CreateForBooking(id, payload.Achievement)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found")
		case errors.Is(err, services.ErrNoTrainingDate):
			utils.JSONError(c, http.StatusUnprocessableEntity, "booking has no training date")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to issue certificate")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, cert)
}

func (ctrl *CertificateController) DeleteCertificate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.CertificateSvc.Delete(id); err != nil {
		if errors.Is(err, services.ErrCertificateNotFound) {
			utils.JSONError(c, http.StatusNotFound, "certificate not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete certificate")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
