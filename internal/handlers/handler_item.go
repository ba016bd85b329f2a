package handlers

import (
	"log/slog"

	"github.com/SscSPs/pos_terminal/internal/dto"
	"github.com/SscSPs/pos_terminal/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (h *terminalHandler) registerItemRoutes(rg *gin.RouterGroup) {
	active := rg.Group("/transactions/active")
	{
		active.POST("/items", h.addItem)
		active.DELETE("/items", h.clearCart)
		active.DELETE("/items/:itemId", h.removeItem)
		active.PUT("/items/:itemId/quantity", h.setItemQuantity)
		active.PUT("/items/:itemId/price", h.setItemUnitPrice)
		active.PUT("/items/:itemId/discount", h.setItemDiscount)
		active.PUT("/items/:itemId/note", h.setItemNote)
		active.POST("/items/:itemId/modifiers", h.addItemModifier)
		active.DELETE("/items/:itemId/modifiers/:modifierId", h.removeItemModifier)

		active.PUT("/discount", h.applyTransactionDiscount)
		active.POST("/charges", h.addAdditionalCharge)
		active.DELETE("/charges/:chargeId", h.removeAdditionalCharge)
	}
}

// addItem godoc
// @Summary Add a product to the active transaction
// @Description Always appends a new line, even when the same product and variation are already in the cart
// @Tags cart
// @Accept  json
// @Produce  json
// @Param   item body dto.AddItemRequest true "Product, quantity and variation"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Active transaction not editable"
// @Security BearerAuth
// @Router /transactions/active/items [post]
func (h *terminalHandler) addItem(c *gin.Context) {
	var req dto.AddItemRequest
	if !bindJSON(c, &req, "add item") {
		return
	}
	tx, err := h.terminalService.AddItem(c.Request.Context(), req)
	if err == nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Item added",
			slog.String("transaction_id", tx.ID), slog.String("product_id", req.Product.ID))
	}
	h.respond(c, tx, err, "add item")
}

// clearCart godoc
// @Summary Remove every item from the active transaction
// @Tags cart
// @Produce  json
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/items [delete]
func (h *terminalHandler) clearCart(c *gin.Context) {
	tx, err := h.terminalService.ClearCart(c.Request.Context())
	h.respond(c, tx, err, "clear cart")
}

// removeItem godoc
// @Summary Remove a line item
// @Tags cart
// @Produce  json
// @Param   itemId path string true "Cart item ID"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/items/{itemId} [delete]
func (h *terminalHandler) removeItem(c *gin.Context) {
	tx, err := h.terminalService.RemoveItem(c.Request.Context(), c.Param("itemId"))
	h.respond(c, tx, err, "remove item")
}

// setItemQuantity godoc
// @Summary Set the quantity of a line item
// @Tags cart
// @Accept  json
// @Produce  json
// @Param   itemId path string true "Cart item ID"
// @Param   quantity body dto.SetQuantityRequest true "Quantity"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /transactions/active/items/{itemId}/quantity [put]
func (h *terminalHandler) setItemQuantity(c *gin.Context) {
	var req dto.SetQuantityRequest
	if !bindJSON(c, &req, "set item quantity") {
		return
	}
	tx, err := h.terminalService.SetItemQuantity(c.Request.Context(), c.Param("itemId"), req)
	h.respond(c, tx, err, "set item quantity")
}

// setItemUnitPrice godoc
// @Summary Override the unit price of a line item
// @Tags cart
// @Accept  json
// @Produce  json
// @Param   itemId path string true "Cart item ID"
// @Param   price body dto.SetUnitPriceRequest true "Unit price"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/items/{itemId}/price [put]
func (h *terminalHandler) setItemUnitPrice(c *gin.Context) {
	var req dto.SetUnitPriceRequest
	if !bindJSON(c, &req, "set item price") {
		return
	}
	tx, err := h.terminalService.SetItemUnitPrice(c.Request.Context(), c.Param("itemId"), req)
	h.respond(c, tx, err, "set item price")
}

// setItemDiscount godoc
// @Summary Set the discount of a line item
// @Tags cart
// @Accept  json
// @Produce  json
// @Param   itemId path string true "Cart item ID"
// @Param   discount body dto.DiscountRequest true "Discount"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Discount out of range"
// @Security BearerAuth
// @Router /transactions/active/items/{itemId}/discount [put]
func (h *terminalHandler) setItemDiscount(c *gin.Context) {
	var req dto.DiscountRequest
	if !bindJSON(c, &req, "set item discount") {
		return
	}
	tx, err := h.terminalService.SetItemDiscount(c.Request.Context(), c.Param("itemId"), req)
	h.respond(c, tx, err, "set item discount")
}

// setItemNote godoc
// @Summary Set the note of a line item
// @Tags cart
// @Accept  json
// @Produce  json
// @Param   itemId path string true "Cart item ID"
// @Param   note body dto.SetNoteRequest true "Note"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/items/{itemId}/note [put]
func (h *terminalHandler) setItemNote(c *gin.Context) {
	var req dto.SetNoteRequest
	if !bindJSON(c, &req, "set item note") {
		return
	}
	tx, err := h.terminalService.SetItemNote(c.Request.Context(), c.Param("itemId"), req)
	h.respond(c, tx, err, "set item note")
}

// addItemModifier godoc
// @Summary Add a modifier to a line item
// @Tags cart
// @Accept  json
// @Produce  json
// @Param   itemId path string true "Cart item ID"
// @Param   modifier body dto.AddModifierRequest true "Modifier"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/items/{itemId}/modifiers [post]
func (h *terminalHandler) addItemModifier(c *gin.Context) {
	var req dto.AddModifierRequest
	if !bindJSON(c, &req, "add item modifier") {
		return
	}
	tx, err := h.terminalService.AddItemModifier(c.Request.Context(), c.Param("itemId"), req)
	h.respond(c, tx, err, "add item modifier")
}

// removeItemModifier godoc
// @Summary Remove a modifier from a line item
// @Tags cart
// @Produce  json
// @Param   itemId path string true "Cart item ID"
// @Param   modifierId path string true "Modifier ID"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/items/{itemId}/modifiers/{modifierId} [delete]
func (h *terminalHandler) removeItemModifier(c *gin.Context) {
	tx, err := h.terminalService.RemoveItemModifier(c.Request.Context(), c.Param("itemId"), c.Param("modifierId"))
	h.respond(c, tx, err, "remove item modifier")
}

// applyTransactionDiscount godoc
// @Summary Set the transaction-level discount
// @Tags cart
// @Accept  json
// @Produce  json
// @Param   discount body dto.DiscountRequest true "Discount"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Discount out of range"
// @Security BearerAuth
// @Router /transactions/active/discount [put]
func (h *terminalHandler) applyTransactionDiscount(c *gin.Context) {
	var req dto.DiscountRequest
	if !bindJSON(c, &req, "apply discount") {
		return
	}
	tx, err := h.terminalService.ApplyTransactionDiscount(c.Request.Context(), req)
	h.respond(c, tx, err, "apply discount")
}

// addAdditionalCharge godoc
// @Summary Add an additional charge
// @Description Adding a charge whose id is already present leaves the transaction unchanged
// @Tags cart
// @Accept  json
// @Produce  json
// @Param   charge body dto.AddChargeRequest true "Charge"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/charges [post]
func (h *terminalHandler) addAdditionalCharge(c *gin.Context) {
	var req dto.AddChargeRequest
	if !bindJSON(c, &req, "add charge") {
		return
	}
	tx, err := h.terminalService.AddAdditionalCharge(c.Request.Context(), req)
	h.respond(c, tx, err, "add charge")
}

// removeAdditionalCharge godoc
// @Summary Remove an additional charge
// @Tags cart
// @Produce  json
// @Param   chargeId path string true "Charge ID"
// @Success 200 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions/active/charges/{chargeId} [delete]
func (h *terminalHandler) removeAdditionalCharge(c *gin.Context) {
	tx, err := h.terminalService.RemoveAdditionalCharge(c.Request.Context(), c.Param("chargeId"))
	h.respond(c, tx, err, "remove charge")
}
