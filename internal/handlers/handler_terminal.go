package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	portssvc "github.com/SscSPs/pos_terminal/internal/core/ports/services"
	"github.com/SscSPs/pos_terminal/internal/dto"
	"github.com/SscSPs/pos_terminal/internal/middleware"
	"github.com/gin-gonic/gin"
)

// terminalHandler handles HTTP requests against the terminal and its transactions.
type terminalHandler struct {
	terminalService portssvc.TerminalSvcFacade
}

// newTerminalHandler creates a new terminalHandler.
func newTerminalHandler(ts portssvc.TerminalSvcFacade) *terminalHandler {
	return &terminalHandler{
		terminalService: ts,
	}
}

// registerTerminalRoutes registers every terminal route on rg.
func registerTerminalRoutes(rg *gin.RouterGroup, terminalService portssvc.TerminalSvcFacade) {
	h := newTerminalHandler(terminalService)

	terminal := rg.Group("/terminal")
	{
		terminal.GET("", h.getTerminal)
		terminal.DELETE("", h.resetTerminal)
		terminal.PUT("/preferences", h.updatePreferences)
	}

	h.registerTransactionRoutes(rg)
	h.registerItemRoutes(rg)
	h.registerSplitRoutes(rg)
}

// respond writes tx as a TransactionResponse, or maps err.
func (h *terminalHandler) respond(c *gin.Context, tx *domain.Transaction, err error, action string) {
	if err != nil {
		respondError(c, err, action)
		return
	}
	activeID := ""
	if active, aerr := h.terminalService.GetActiveTransaction(c.Request.Context()); aerr == nil {
		activeID = active.ID
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx, activeID))
}

// getTerminal godoc
// @Summary Get terminal state
// @Description Returns every open transaction, the active transaction id and the UI preferences
// @Tags terminal
// @Produce  json
// @Success 200 {object} dto.TerminalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /terminal [get]
func (h *terminalHandler) getTerminal(c *gin.Context) {
	doc := h.terminalService.GetDocument(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToTerminalResponse(doc, h.terminalService.TaxRate()))
}

// updatePreferences godoc
// @Summary Update UI preferences
// @Tags terminal
// @Accept  json
// @Produce  json
// @Param   preferences body dto.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} domain.Preferences
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /terminal/preferences [put]
func (h *terminalHandler) updatePreferences(c *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if !bindJSON(c, &req, "update preferences") {
		return
	}
	prefs, err := h.terminalService.UpdatePreferences(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "update preferences")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Preferences updated",
		slog.String("view_mode", string(prefs.ViewMode)), slog.Bool("scanner_enabled", prefs.ScannerEnabled))
	c.JSON(http.StatusOK, prefs)
}

// resetTerminal godoc
// @Summary Reset the terminal
// @Description Discards every transaction and the stored state, leaving one empty sale. Preferences are kept.
// @Tags terminal
// @Produce  json
// @Success 200 {object} dto.TerminalResponse
// @Failure 500 {object} map[string]string "Stored state could not be deleted"
// @Security BearerAuth
// @Router /terminal [delete]
func (h *terminalHandler) resetTerminal(c *gin.Context) {
	doc, err := h.terminalService.ResetTerminal(c.Request.Context())
	if err != nil {
		respondError(c, err, "reset terminal")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Terminal reset", slog.Int("transactions", len(doc.Transactions)))
	c.JSON(http.StatusOK, dto.ToTerminalResponse(doc, h.terminalService.TaxRate()))
}
