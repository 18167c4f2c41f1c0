package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"continuum/internal/backup"
	apperrors "continuum/internal/errors"
	"continuum/internal/services"
)

// maxSnapshotBytes bounds the size of an uploaded backup file.
const maxSnapshotBytes = 32 << 20

// ImportResponse confirms a restored backup.
type ImportResponse struct {
	Message string                 `json:"message"`
	Result  *services.ImportResult `json:"result"`
}

// BackupHandler handles export and import of the whole store.
type BackupHandler struct {
	backupService services.BackupServicer
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService services.BackupServicer) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// ExportBackup handles downloading a snapshot of every record.
// @Summary     Export a backup
// @Description Download every subscription, asset, value change and warranty as a version 1 snapshot
// @Tags        backup
// @Produce     json
// @Success     200 {object} backup.Snapshot "Snapshot file"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup/export [get]
func (h *BackupHandler) ExportBackup(c *gin.Context) {
	at := now()
	data, err := h.backupService.Export(at)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+backup.FileName(at)+`"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ImportBackup handles restoring a snapshot. Records are added next to the
// existing ones; nothing is written if any part of the file is unreadable.
// @Summary     Import a backup
// @Description Restore a snapshot additively. The request body is the raw snapshot file.
// @Tags        backup
// @Accept      json
// @Produce     json
// @Param       snapshot body     backup.Snapshot true "Snapshot file"
// @Success     200      {object} ImportResponse  "Backup restored"
// @Failure     400      {object} ErrorResponse   "Unreadable or unsupported snapshot"
// @Failure     413      {object} ErrorResponse   "Snapshot too large"
// @Failure     500      {object} ErrorResponse   "Server error"
// @Router      /backup/import [post]
func (h *BackupHandler) ImportBackup(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSnapshotBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(c, apperrors.Wrap(apperrors.ErrSnapshotTooLarge, err))
			return
		}
		respondWithError(c, apperrors.WrapWithMessage(apperrors.ErrInvalidInput, "The request body could not be read", err))
		return
	}

	result, err := h.backupService.Import(data)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImportResponse{Message: "Your backup was restored successfully.", Result: result})
}
