// controllers/backup_controller.go
package controllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"training-backend/services"
	"training-backend/utils"
)

type BackupController struct {
	BackupSvc *services.BackupService
}

func NewBackupController(svc *services.BackupService) *BackupController {
	return &BackupController{BackupSvc: svc}
}

type CreateBackupPayload struct {
	Type string `json:"type" binding:"required,oneof=full incremental"`
}

// CreateBackup runs a manual snapshot of the store's backing file.
func (ctrl *BackupController) CreateBackup(c *gin.Context) {
	var payload CreateBackupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: type must be full or incremental")
		return
	}

	if !ctrl.BackupSvc.Available() {
		utils.JSONError(c, http.StatusServiceUnavailable, "store has no file backing artifact to snapshot")
		return
	}

	path, err := ctrl.BackupSvc.Snapshot(payload.Type)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "backup failed: "+err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"backup": filepath.Base(path)})
}
