package handlers

import (
	"net/http"

	"github.com/SscSPs/pos_terminal/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *terminalHandler) registerSplitRoutes(rg *gin.RouterGroup) {
	split := rg.Group("/transactions/active/split")
	{
		split.POST("", h.enableSplitPayment)
		split.DELETE("", h.disableSplitPayment)
		split.GET("/summary", h.getSplitSummary)
		split.POST("/splits", h.addSplit)
		split.POST("/equal", h.addEqualSplits)
		split.POST("/recalculate", h.recalculateSplits)
		split.PATCH("/splits/:splitId", h.updateSplit)
		split.DELETE("/splits/:splitId", h.removeSplit)
		split.POST("/splits/:splitId/paid", h.markSplitPaid)
	}
}

// enableSplitPayment godoc
// @Summary Enable split payment
// @Description Freezes the current total as the amount to be split
// @Tags split
// @Produce  json
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/split [post]
func (h *terminalHandler) enableSplitPayment(c *gin.Context) {
	tx, err := h.terminalService.EnableSplitPayment(c.Request.Context())
	h.respond(c, tx, err, "enable split payment")
}

// disableSplitPayment godoc
// @Summary Disable split payment
// @Tags split
// @Produce  json
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/split [delete]
func (h *terminalHandler) disableSplitPayment(c *gin.Context) {
	tx, err := h.terminalService.DisableSplitPayment(c.Request.Context())
	h.respond(c, tx, err, "disable split payment")
}

// getSplitSummary godoc
// @Summary Get split payment progress
// @Tags split
// @Produce  json
// @Success 200 {object} domain.SplitSummary
// @Security BearerAuth
// @Router /transactions/active/split/summary [get]
func (h *terminalHandler) getSplitSummary(c *gin.Context) {
	summary, err := h.terminalService.GetSplitSummary(c.Request.Context())
	if err != nil {
		respondError(c, err, "get split summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// addSplit godoc
// @Summary Add a split
// @Tags split
// @Accept  json
// @Produce  json
// @Param   split body dto.AddSplitRequest true "Split"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Split payment not enabled or invalid split"
// @Security BearerAuth
// @Router /transactions/active/split/splits [post]
func (h *terminalHandler) addSplit(c *gin.Context) {
	var req dto.AddSplitRequest
	if !bindJSON(c, &req, "add split") {
		return
	}
	tx, err := h.terminalService.AddSplit(c.Request.Context(), req)
	h.respond(c, tx, err, "add split")
}

// addEqualSplits godoc
// @Summary Append N equal splits of the frozen total
// @Tags split
// @Accept  json
// @Produce  json
// @Param   count body dto.EqualSplitRequest true "Number of splits"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/split/equal [post]
func (h *terminalHandler) addEqualSplits(c *gin.Context) {
	var req dto.EqualSplitRequest
	if !bindJSON(c, &req, "add equal splits") {
		return
	}
	tx, err := h.terminalService.AddEqualSplits(c.Request.Context(), req)
	h.respond(c, tx, err, "add equal splits")
}

// recalculateSplits godoc
// @Summary Re-derive split amounts from the current total
// @Tags split
// @Produce  json
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/split/recalculate [post]
func (h *terminalHandler) recalculateSplits(c *gin.Context) {
	tx, err := h.terminalService.RecalculateSplits(c.Request.Context())
	h.respond(c, tx, err, "recalculate splits")
}

// updateSplit godoc
// @Summary Patch a split
// @Tags split
// @Accept  json
// @Produce  json
// @Param   splitId path string true "Split ID"
// @Param   split body dto.UpdateSplitRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/split/splits/{splitId} [patch]
func (h *terminalHandler) updateSplit(c *gin.Context) {
	var req dto.UpdateSplitRequest
	if !bindJSON(c, &req, "update split") {
		return
	}
	tx, err := h.terminalService.UpdateSplit(c.Request.Context(), c.Param("splitId"), req)
	h.respond(c, tx, err, "update split")
}

// removeSplit godoc
// @Summary Remove a split
// @Tags split
// @Produce  json
// @Param   splitId path string true "Split ID"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/split/splits/{splitId} [delete]
func (h *terminalHandler) removeSplit(c *gin.Context) {
	tx, err := h.terminalService.RemoveSplit(c.Request.Context(), c.Param("splitId"))
	h.respond(c, tx, err, "remove split")
}

// markSplitPaid godoc
// @Summary Mark a split as paid
// @Tags split
// @Accept  json
// @Produce  json
// @Param   splitId path string true "Split ID"
// @Param   payment body dto.MarkSplitPaidRequest true "Payment method"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/split/splits/{splitId}/paid [post]
func (h *terminalHandler) markSplitPaid(c *gin.Context) {
	var req dto.MarkSplitPaidRequest
	if !bindJSON(c, &req, "mark split paid") {
		return
	}
	tx, err := h.terminalService.MarkSplitPaid(c.Request.Context(), c.Param("splitId"), req)
	h.respond(c, tx, err, "mark split paid")
}
