package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pos_terminal/internal/dto"
	"github.com/SscSPs/pos_terminal/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (h *terminalHandler) registerTransactionRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("", h.createTransaction)
		transactions.GET("/active", h.getActiveTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
		transactions.PUT("/:id/active", h.setActiveTransaction)
		transactions.PUT("/:id/name", h.renameTransaction)
		transactions.PUT("/:id/customer", h.setCustomer)
		transactions.POST("/:id/park", h.parkTransaction)
		transactions.POST("/:id/void", h.voidTransaction)
		transactions.POST("/:id/complete", h.completeTransaction)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists every transaction held by the terminal in creation order
// @Tags transactions
// @Produce  json
// @Success 200 {array} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *terminalHandler) listTransactions(c *gin.Context) {
	doc := h.terminalService.GetDocument(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToTransactionResponses(doc.Transactions, doc.ActiveTransactionID))
}

// createTransaction godoc
// @Summary Open a new transaction
// @Description Creates an empty transaction and makes it the active one
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest false "Optional name"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Security BearerAuth
// @Router /transactions [post]
func (h *terminalHandler) createTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindOptionalJSON(c, &req, "create transaction") {
		return
	}
	tx, err := h.terminalService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "create transaction")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction created", slog.String("transaction_id", tx.ID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx, tx.ID))
}

// getActiveTransaction godoc
// @Summary Get the active transaction
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active [get]
func (h *terminalHandler) getActiveTransaction(c *gin.Context) {
	tx, err := h.terminalService.GetActiveTransaction(c.Request.Context())
	if err != nil {
		respondError(c, err, "get active transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx, tx.ID))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *terminalHandler) getTransaction(c *gin.Context) {
	tx, err := h.terminalService.GetTransaction(c.Request.Context(), c.Param("id"))
	h.respond(c, tx, err, "get transaction")
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction. Deleting the last one leaves a fresh empty transaction.
// @Tags transactions
// @Param   id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *terminalHandler) deleteTransaction(c *gin.Context) {
	if err := h.terminalService.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// setActiveTransaction godoc
// @Summary Switch the active transaction
// @Description Makes the transaction active; a parked transaction is resumed
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id}/active [put]
func (h *terminalHandler) setActiveTransaction(c *gin.Context) {
	tx, err := h.terminalService.SetActiveTransaction(c.Request.Context(), c.Param("id"))
	h.respond(c, tx, err, "set active transaction")
}

// renameTransaction godoc
// @Summary Rename a transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   name body dto.RenameTransactionRequest true "New name"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id}/name [put]
func (h *terminalHandler) renameTransaction(c *gin.Context) {
	var req dto.RenameTransactionRequest
	if !bindJSON(c, &req, "rename transaction") {
		return
	}
	tx, err := h.terminalService.RenameTransaction(c.Request.Context(), c.Param("id"), req)
	h.respond(c, tx, err, "rename transaction")
}

// setCustomer godoc
// @Summary Attach or clear the customer of a transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   customer body dto.SetCustomerRequest true "Customer; empty values clear it"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is closed"
// @Security BearerAuth
// @Router /transactions/{id}/customer [put]
func (h *terminalHandler) setCustomer(c *gin.Context) {
	var req dto.SetCustomerRequest
	if !bindJSON(c, &req, "set customer") {
		return
	}
	tx, err := h.terminalService.SetCustomer(c.Request.Context(), c.Param("id"), req)
	h.respond(c, tx, err, "set customer")
}

// parkTransaction godoc
// @Summary Park a transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is closed"
// @Security BearerAuth
// @Router /transactions/{id}/park [post]
func (h *terminalHandler) parkTransaction(c *gin.Context) {
	tx, err := h.terminalService.ParkTransaction(c.Request.Context(), c.Param("id"))
	h.respond(c, tx, err, "park transaction")
}

// voidTransaction godoc
// @Summary Void a transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction already completed"
// @Security BearerAuth
// @Router /transactions/{id}/void [post]
func (h *terminalHandler) voidTransaction(c *gin.Context) {
	tx, err := h.terminalService.VoidTransaction(c.Request.Context(), c.Param("id"))
	h.respond(c, tx, err, "void transaction")
}

// completeTransaction godoc
// @Summary Complete a transaction
// @Description Marks an active, non-empty transaction as completed. With split payment enabled every split must be paid.
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Transaction empty or not fully paid"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction not active"
// @Security BearerAuth
// @Router /transactions/{id}/complete [post]
func (h *terminalHandler) completeTransaction(c *gin.Context) {
	tx, err := h.terminalService.CompleteTransaction(c.Request.Context(), c.Param("id"))
	h.respond(c, tx, err, "complete transaction")
}
