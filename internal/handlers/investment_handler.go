package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finanmind/internal/errors"
	"finanmind/internal/models"
	"finanmind/internal/services"
)

// InvestmentHandler serves investment transactions and their summary.
// Investments are ordinary transactions whose type is pinned to investment.
type InvestmentHandler struct {
	transactions  *TransactionHandler
	reportService services.ReportServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(transactionService services.TransactionServicer, reportService services.ReportServicer) *InvestmentHandler {
	return &InvestmentHandler{
		transactions:  NewTransactionHandler(transactionService),
		reportService: reportService,
	}
}

var investmentType = models.TransactionTypeInvestment

// InvestmentRequest is a transaction payload without a type.
type InvestmentRequest struct {
	CategoryID  uint            `json:"category_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"250.00"`
	Description string          `json:"description" binding:"max=500"`
	Date        string          `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2024-03-15"`
}

func (r InvestmentRequest) withType(t models.TransactionType) CreateTransactionRequest {
	return CreateTransactionRequest{
		CategoryID:  r.CategoryID,
		Type:        t,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
	}
}

// requireType reports TRANSACTION_NOT_FOUND unless the user's transaction
// exists and has the given type.
func (h *TransactionHandler) requireType(userID, transactionID uint, t models.TransactionType) error {
	existing, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}
	if existing.Type != t {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// GetInvestments lists the user's investment transactions
// @Summary     List investments
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Param       start_date query string false "Start date (YYYY-MM-DD)"
// @Param       end_date   query string false "End date (YYYY-MM-DD)"
// @Param       category   query int    false "Category ID"
// @Success     200 {object} pagination.PageResponse[models.TransactionView] "Paginated investments"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	h.transactions.list(c, &investmentType)
}

// GetInvestmentSummary returns invested totals grouped by category
// @Summary     Investment summary
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.InvestmentSummary "Investment summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments/summary [get]
func (h *InvestmentHandler) GetInvestmentSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.GetInvestmentSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CreateInvestment records an investment transaction
// @Summary     Create an investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body InvestmentRequest true "Investment details"
// @Success     201 {object} models.Transaction "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	h.transactions.create(c, &investmentType)
}

// UpdateInvestment changes an investment transaction. The type cannot change.
// @Summary     Update an investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} models.Transaction "Updated investment"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	h.transactions.update(c, &investmentType)
}

// DeleteInvestment deletes an investment transaction
// @Summary     Delete an investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} map[string]string "Investment deleted"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	h.transactions.delete(c, &investmentType)
}
