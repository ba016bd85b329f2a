package handlers_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/core/services"
	"github.com/SscSPs/pos_terminal/internal/dto"
	"github.com/SscSPs/pos_terminal/internal/handlers"
	"github.com/SscSPs/pos_terminal/internal/middleware"
	"github.com/SscSPs/pos_terminal/internal/platform/config"
	"github.com/SscSPs/pos_terminal/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

const (
	testJWTSecret = "handler-test-secret"
	testJWTIssuer = "pos-terminal"
)

type TerminalHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	token  string
}

func (suite *TerminalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		IsProduction:    true,
		TaxRate:         decimal.RequireFromString("0.08"),
		StorageDriver:   config.StorageMemory,
		TerminalID:      "till-1",
		PersistDebounce: time.Hour,
		JWTSecret:       testJWTSecret,
		JWTIssuer:       testJWTIssuer,
	}
	logger := slog.Default()
	container := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(), nil, logger)

	rateLimiter := limiter.New(memorystore.NewStore(), limiter.Rate{Period: time.Minute, Limit: 1000})

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(logger))
	handlers.RegisterRoutes(suite.router, cfg, container, rateLimiter, prometheus.NewRegistry())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "operator-1",
		Issuer:    testJWTIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)
	suite.token = token
}

func TestTerminalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TerminalHandlerTestSuite))
}

func (suite *TerminalHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TerminalHandlerTestSuite) decodeTx(w *httptest.ResponseRecorder) dto.TransactionResponse {
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func (suite *TerminalHandlerTestSuite) addCoffee(quantity int) dto.TransactionResponse {
	w := suite.do(http.MethodPost, "/transactions/active/items", map[string]any{
		"product":  map[string]any{"id": "coffee", "name": "Coffee", "basePrice": "10.00"},
		"quantity": quantity,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	return suite.decodeTx(w)
}

func (suite *TerminalHandlerTestSuite) TestHealthAndMetricsArePublic() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *TerminalHandlerTestSuite) TestAPIRequiresToken() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/terminal", nil))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TerminalHandlerTestSuite) TestGetTerminal_FreshState() {
	w := suite.do(http.MethodGet, "/terminal", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.TerminalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal(resp.Transactions[0].ID, resp.ActiveTransactionID)
	suite.True(resp.Transactions[0].IsActive)
	suite.Equal("0.08", resp.TaxRate.String())
	suite.Equal(domain.ViewGrid, resp.Preferences.ViewMode)
}

func (suite *TerminalHandlerTestSuite) TestCheckoutFlow() {
	tx := suite.addCoffee(2)
	suite.Require().Len(tx.Items, 1)
	itemID := tx.Items[0].ID

	w := suite.do(http.MethodPut, "/transactions/active/items/"+itemID+"/discount", dto.DiscountRequest{
		Discount: decimal.NewFromInt(10), DiscountType: domain.DiscountPercentage,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	tx = suite.decodeTx(w)
	suite.Equal("18.00", tx.Subtotal.StringFixed(2))
	suite.Equal("19.44", tx.Total.StringFixed(2))

	w = suite.do(http.MethodPut, "/transactions/active/discount", dto.DiscountRequest{
		Discount: decimal.NewFromInt(4), DiscountType: domain.DiscountFixed,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("15.44", suite.decodeTx(w).Total.StringFixed(2))

	w = suite.do(http.MethodPost, "/transactions/"+tx.ID+"/complete", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(domain.StatusCompleted, suite.decodeTx(w).Status)

	w = suite.do(http.MethodPost, "/transactions/"+tx.ID+"/void", nil)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TerminalHandlerTestSuite) TestDiscountValidation() {
	itemID := suite.addCoffee(1).Items[0].ID

	w := suite.do(http.MethodPut, "/transactions/active/items/"+itemID+"/discount", dto.DiscountRequest{
		Discount: decimal.NewFromInt(150), DiscountType: domain.DiscountPercentage,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, "/transactions/active/items/"+itemID+"/discount", map[string]any{
		"discount": "1", "discountType": "bogus",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, "/transactions/active/items/"+itemID+"/discount", dto.DiscountRequest{
		Discount: decimal.NewFromInt(50), DiscountType: domain.DiscountFixed,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TerminalHandlerTestSuite) TestAddItem_InvalidBody() {
	w := suite.do(http.MethodPost, "/transactions/active/items", map[string]any{
		"product": map[string]any{"name": "No id", "basePrice": "1"},
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/transactions/active/items", map[string]any{
		"product": map[string]any{"id": "neg", "basePrice": "-1"},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TerminalHandlerTestSuite) TestUnknownItem_NotFound() {
	w := suite.do(http.MethodPut, "/transactions/active/items/missing/quantity", dto.SetQuantityRequest{Quantity: 2})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TerminalHandlerTestSuite) TestTransactionLifecycle() {
	w := suite.do(http.MethodPost, "/transactions", nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	second := suite.decodeTx(w)
	suite.True(second.IsActive)

	w = suite.do(http.MethodPut, "/transactions/"+second.ID+"/name", dto.RenameTransactionRequest{Name: "Table 4"})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("Table 4", suite.decodeTx(w).Name)

	w = suite.do(http.MethodPut, "/transactions/"+second.ID+"/customer", dto.SetCustomerRequest{CustomerID: "c-1", CustomerName: "Ada"})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("Ada", suite.decodeTx(w).CustomerName)

	w = suite.do(http.MethodPost, "/transactions/"+second.ID+"/park", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(domain.StatusParked, suite.decodeTx(w).Status)

	w = suite.do(http.MethodPut, "/transactions/"+second.ID+"/active", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	resumed := suite.decodeTx(w)
	suite.Equal(domain.StatusActive, resumed.Status)
	suite.True(resumed.IsActive)

	w = suite.do(http.MethodGet, "/transactions", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Len(list, 2)

	w = suite.do(http.MethodDelete, "/transactions/"+second.ID, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, "/transactions/"+second.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TerminalHandlerTestSuite) TestRename_RequiresName() {
	w := suite.do(http.MethodGet, "/transactions/active", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	active := suite.decodeTx(w)

	w = suite.do(http.MethodPut, "/transactions/"+active.ID+"/name", map[string]any{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TerminalHandlerTestSuite) TestModifiersAndCharges() {
	itemID := suite.addCoffee(1).Items[0].ID

	w := suite.do(http.MethodPost, "/transactions/active/items/"+itemID+"/modifiers", dto.AddModifierRequest{
		ID: "oat", Name: "Oat milk", Price: decimal.RequireFromString("0.50"),
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("10.50", suite.decodeTx(w).Subtotal.StringFixed(2))

	w = suite.do(http.MethodDelete, "/transactions/active/items/"+itemID+"/modifiers/oat", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("10.00", suite.decodeTx(w).Subtotal.StringFixed(2))

	charge := dto.AddChargeRequest{ChargeID: "svc", Name: "Service", Amount: decimal.NewFromInt(2)}
	w = suite.do(http.MethodPost, "/transactions/active/charges", charge)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Len(suite.decodeTx(w).AdditionalCharges, 1)

	w = suite.do(http.MethodPost, "/transactions/active/charges", charge)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(suite.decodeTx(w).AdditionalCharges, 1)

	w = suite.do(http.MethodDelete, "/transactions/active/charges/svc", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Empty(suite.decodeTx(w).AdditionalCharges)

	w = suite.do(http.MethodDelete, "/transactions/active/items", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Empty(suite.decodeTx(w).Items)
}

func (suite *TerminalHandlerTestSuite) TestSplitPaymentFlow() {
	w := suite.do(http.MethodPost, "/transactions/active/split/equal", dto.EqualSplitRequest{Count: 2})
	suite.Equal(http.StatusBadRequest, w.Code, "split payment not enabled yet")

	suite.addCoffee(1)

	w = suite.do(http.MethodPost, "/transactions/active/split", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	tx := suite.decodeTx(w)
	suite.Require().NotNil(tx.SplitPayment)
	suite.True(tx.SplitPayment.Enabled)
	suite.Equal("10.80", tx.SplitPayment.TotalAmount.StringFixed(2))

	w = suite.do(http.MethodPost, "/transactions/active/split/equal", dto.EqualSplitRequest{Count: 3})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	splits := suite.decodeTx(w).SplitPayment.Splits
	suite.Require().Len(splits, 3)

	w = suite.do(http.MethodPost, "/transactions/active/split/splits", map[string]any{"splitType": "percentage"})
	suite.Equal(http.StatusBadRequest, w.Code, "percentage split without percentage")

	for _, split := range splits {
		w = suite.do(http.MethodPost, "/transactions/active/split/splits/"+split.ID+"/paid", dto.MarkSplitPaidRequest{PaymentMethod: "card"})
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	}

	w = suite.do(http.MethodGet, "/transactions/active/split/summary", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var summary domain.SplitSummary
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	suite.True(summary.IsFullyPaid)
	suite.Equal(3, summary.PaidCount)

	w = suite.do(http.MethodDelete, "/transactions/active/split", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Nil(suite.decodeTx(w).SplitPayment)
}

func (suite *TerminalHandlerTestSuite) TestUpdatePreferences() {
	w := suite.do(http.MethodPut, "/terminal/preferences", map[string]any{"viewMode": "list", "scannerEnabled": false})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var prefs domain.Preferences
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &prefs))
	suite.Equal(domain.ViewList, prefs.ViewMode)
	suite.False(prefs.ScannerEnabled)

	w = suite.do(http.MethodPut, "/terminal/preferences", map[string]any{"viewMode": "tiles", "scannerEnabled": true})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TerminalHandlerTestSuite) TestResetTerminal() {
	suite.addCoffee(1)
	w := suite.do(http.MethodPost, "/transactions", nil)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodDelete, "/terminal", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TerminalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
	suite.Empty(resp.Transactions[0].Items)
	suite.Equal(resp.Transactions[0].ID, resp.ActiveTransactionID)
}

func (suite *TerminalHandlerTestSuite) TestAddItem_SameProductAppendsNewLine() {
	suite.addCoffee(1)
	tx := suite.addCoffee(1)

	suite.Require().Len(tx.Items, 2)
	suite.NotEqual(tx.Items[0].ID, tx.Items[1].ID)
	suite.Equal(1, tx.Items[1].Quantity)
}
