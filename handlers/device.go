package handlers

import (
	"net/http"

	deviceRepo "vowflow/database/repository/device"
	"vowflow/utils"

	"github.com/gin-gonic/gin"
)

// DeviceHandler registers push tokens for workflow parties.
type DeviceHandler struct {
	Devices deviceRepo.DeviceRepository
}

func NewDeviceHandler(devices deviceRepo.DeviceRepository) *DeviceHandler {
	return &DeviceHandler{Devices: devices}
}

// UpdateFCMToken upserts the caller's push token.
func (h *DeviceHandler) UpdateFCMToken(c *gin.Context) {
	var input struct {
		OwnerID  string `json:"owner_id"`
		FCMToken string `json:"fcm_token"`
		Platform string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.OwnerID == "" || input.FCMToken == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "owner_id and fcm_token are required")
		return
	}

	if err := h.Devices.SaveToken(c.Request.Context(), input.OwnerID, input.FCMToken, input.Platform); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
