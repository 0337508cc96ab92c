package handlers

import (
	"net/http"

	"vowflow/models"
	"vowflow/services/workflow"
	"vowflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkflowHandler exposes the reservation engine over HTTP.
type WorkflowHandler struct {
	Svc    workflow.Service
	Logger *zap.Logger
}

func NewWorkflowHandler(svc workflow.Service, logger *zap.Logger) *WorkflowHandler {
	return &WorkflowHandler{Svc: svc, Logger: logger}
}

// statusFor maps engine error codes to HTTP status codes.
func statusFor(err error) int {
	switch workflow.ErrCode(err) {
	case workflow.CodeValidation:
		return http.StatusBadRequest
	case workflow.CodeNotFound:
		return http.StatusNotFound
	case workflow.CodeAccessDenied:
		return http.StatusForbidden
	case workflow.CodeConflict:
		return http.StatusConflict
	case workflow.CodeInvalidTransition:
		return http.StatusConflict
	case workflow.CodePaymentGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *WorkflowHandler) respondError(c *gin.Context, err error) {
	utils.JSONError(c, statusFor(err), "request failed", err.Error())
}

// Initiate starts a new reservation workflow.
func (h *WorkflowHandler) Initiate(c *gin.Context) {
	var req models.InitiateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	wf, err := h.Svc.Initiate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"workflowId": wf.ID, "state": wf.State})
}

// SubmitQuote records the vendor's offer.
func (h *WorkflowHandler) SubmitQuote(c *gin.Context) {
	var req models.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.WorkflowID = c.Param("id")

	wf, err := h.Svc.SubmitQuote(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}

// AcceptQuote accepts an offer and materializes contract and booking.
func (h *WorkflowHandler) AcceptQuote(c *gin.Context) {
	var input struct {
		CustomerID    string `json:"customer_id"`
		AcceptedTerms bool   `json:"accepted_terms"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	wf, err := h.Svc.AcceptQuote(c.Request.Context(), c.Param("id"), c.Param("quoteID"), input.CustomerID, input.AcceptedTerms)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}

// SignContract records the e-signature and requests the deposit.
func (h *WorkflowHandler) SignContract(c *gin.Context) {
	var input struct {
		CustomerID string `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	wf, err := h.Svc.SignContract(c.Request.Context(), c.Param("id"), input.CustomerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}

// MarkDelivered is the vendor's delivery confirmation.
func (h *WorkflowHandler) MarkDelivered(c *gin.Context) {
	var input struct {
		VendorID string `json:"vendor_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	wf, err := h.Svc.MarkDelivered(c.Request.Context(), c.Param("id"), input.VendorID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}

// Cancel terminates the workflow with compensation.
func (h *WorkflowHandler) Cancel(c *gin.Context) {
	var input struct {
		ActorID string `json:"actor_id"`
		Reason  string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	wf, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), input.ActorID, input.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}

// Reschedule moves the reservation to a new date or time range.
func (h *WorkflowHandler) Reschedule(c *gin.Context) {
	var input struct {
		ActorID     string `json:"actor_id"`
		ServiceDate string `json:"service_date"`
		Start       int    `json:"start"`
		End         int    `json:"end"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	wf, err := h.Svc.Reschedule(c.Request.Context(), c.Param("id"), input.ActorID, input.ServiceDate, input.Start, input.End)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}

// RetryPayment re-requests a payment intent after a failure.
func (h *WorkflowHandler) RetryPayment(c *gin.Context) {
	var input struct {
		CustomerID string `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	wf, err := h.Svc.RetryPayment(c.Request.Context(), c.Param("id"), input.CustomerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}

// Get returns a single workflow.
func (h *WorkflowHandler) Get(c *gin.Context) {
	wf, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}

// Timeline returns the workflow's audit trail.
func (h *WorkflowHandler) Timeline(c *gin.Context) {
	entries, err := h.Svc.Timeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeline": entries})
}

// List returns workflows for a customer or vendor.
func (h *WorkflowHandler) List(c *gin.Context) {
	if customerID := c.Query("customer_id"); customerID != "" {
		workflows, err := h.Svc.ListByCustomer(c.Request.Context(), customerID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"workflows": workflows})
		return
	}
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		workflows, err := h.Svc.ListByVendor(c.Request.Context(), vendorID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"workflows": workflows})
		return
	}
	utils.JSONError(c, http.StatusBadRequest, "invalid input", "customer_id or vendor_id query parameter is required")
}

// CheckAvailability answers whether a vendor slot is free.
func (h *WorkflowHandler) CheckAvailability(c *gin.Context) {
	var query struct {
		Date             string `form:"date"`
		Start            int    `form:"start"`
		End              int    `form:"end"`
		ExcludeBookingID string `form:"exclude_booking_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Svc.CheckAvailability(c.Request.Context(), c.Param("id"), query.Date, query.Start, query.End, query.ExcludeBookingID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// BlockDate declares a vendor-unavailable date.
func (h *WorkflowHandler) BlockDate(c *gin.Context) {
	var input struct {
		Date   string `json:"date"`
		Start  int    `json:"start"`
		End    int    `json:"end"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	blockID, err := h.Svc.BlockDate(c.Request.Context(), c.Param("id"), input.Date, input.Start, input.End, input.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"blockId": blockID})
}

// UnblockDate removes a vendor-declared block.
func (h *WorkflowHandler) UnblockDate(c *gin.Context) {
	if err := h.Svc.UnblockDate(c.Request.Context(), c.Param("id"), c.Param("blockID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBlockedDates lists a vendor's declared blocks.
func (h *WorkflowHandler) ListBlockedDates(c *gin.Context) {
	blocks, err := h.Svc.ListBlockedDates(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blockedDates": blocks})
}
