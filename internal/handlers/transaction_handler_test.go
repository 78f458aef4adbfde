package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finanmind/internal/errors"
	"finanmind/internal/models"
	"finanmind/internal/pagination"
	"finanmind/internal/services"
)

type mockTransactionService struct {
	createTransactionFn   func(userID, categoryID uint, transactionType models.TransactionType, amount decimal.Decimal, description string, date models.Date) (*models.Transaction, error)
	getUserTransactionsFn func(userID uint, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.TransactionView], error)
	getTransactionByIDFn  func(userID, transactionID uint) (*models.Transaction, error)
	updateTransactionFn   func(userID, transactionID uint, update services.TransactionUpdate) (*models.Transaction, error)
	deleteTransactionFn   func(userID, transactionID uint) error
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func (m *mockTransactionService) CreateTransaction(userID, categoryID uint, transactionType models.TransactionType, amount decimal.Decimal, description string, date models.Date) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, categoryID, transactionType, amount, description, date)
	}
	return &models.Transaction{
		Base:        models.Base{ID: 1},
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Date:        date,
	}, nil
}

func (m *mockTransactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.TransactionView], error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse[models.TransactionView](nil, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{Base: models.Base{ID: transactionID}, UserID: userID}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, transactionID uint, update services.TransactionUpdate) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, transactionID, update)
	}
	return &models.Transaction{Base: models.Base{ID: transactionID}, UserID: userID}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID uint) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/transactions", injectUserID(1))
	g.GET("", handler.GetUserTransactions)
	g.POST("", handler.CreateTransaction)
	g.GET("/:id", handler.GetTransactionByID)
	g.PUT("/:id", handler.UpdateTransaction)
	g.DELETE("/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("parses amount and date", func(t *testing.T) {
		var gotAmount decimal.Decimal
		var gotDate models.Date
		svc := &mockTransactionService{
			createTransactionFn: func(userID, categoryID uint, tt models.TransactionType, amount decimal.Decimal, desc string, date models.Date) (*models.Transaction, error) {
				gotAmount, gotDate = amount, date
				return &models.Transaction{Base: models.Base{ID: 5}, UserID: userID, CategoryID: categoryID, Type: tt, Amount: amount, Date: date}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"category_id":3,"type":"expense","amount":"19.99","description":"Lunch","date":"2024-03-10"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotAmount.Equal(decimal.RequireFromString("19.99")) {
			t.Errorf("expected amount 19.99, got %s", gotAmount)
		}
		if gotDate.String() != "2024-03-10" {
			t.Errorf("expected date 2024-03-10, got %s", gotDate)
		}
		tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
		if tx["amount"] != "19.99" || tx["date"] != "2024-03-10" {
			t.Errorf("unexpected transaction %v", tx)
		}
	})

	t.Run("accepts a numeric amount and no date", func(t *testing.T) {
		var gotAmount decimal.Decimal
		var gotDate models.Date
		svc := &mockTransactionService{
			createTransactionFn: func(_, _ uint, _ models.TransactionType, amount decimal.Decimal, _ string, date models.Date) (*models.Transaction, error) {
				gotAmount, gotDate = amount, date
				return &models.Transaction{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions", `{"category_id":3,"type":"income","amount":1500.5}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotAmount.Equal(decimal.RequireFromString("1500.5")) {
			t.Errorf("expected amount 1500.5, got %s", gotAmount)
		}
		if !gotDate.IsZero() {
			t.Errorf("expected zero date, got %s", gotDate)
		}
	})

	t.Run("returns 400 on invalid type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions", `{"category_id":3,"type":"transfer","amount":"10"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions", `{"category_id":3,"type":"expense","amount":"10","date":"10/03/2024"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("surfaces service validation", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(_, _ uint, _ models.TransactionType, _ decimal.Decimal, _ string, _ models.Date) (*models.Transaction, error) {
				return nil, apperrors.ErrInvalidAmount
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions", `{"category_id":3,"type":"expense","amount":"-1"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_AMOUNT")
	})
}

func TestTransactionHandler_GetUserTransactions(t *testing.T) {
	t.Run("maps query filters", func(t *testing.T) {
		var gotPage pagination.PageRequest
		var gotFilter services.TransactionFilter
		svc := &mockTransactionService{
			getUserTransactionsFn: func(_ uint, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.TransactionView], error) {
				gotPage, gotFilter = page, filter
				resp := pagination.NewPageResponse([]models.TransactionView{{ID: 1}}, 2, 5, 6)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions?page=2&page_size=5&start_date=2024-03-01&end_date=2024-03-31&type=expense&category=4", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("unexpected page %+v", gotPage)
		}
		if gotFilter.StartDate == nil || gotFilter.StartDate.String() != "2024-03-01" {
			t.Errorf("unexpected start date %v", gotFilter.StartDate)
		}
		if gotFilter.EndDate == nil || gotFilter.EndDate.String() != "2024-03-31" {
			t.Errorf("unexpected end date %v", gotFilter.EndDate)
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.TransactionTypeExpense {
			t.Errorf("unexpected type %v", gotFilter.Type)
		}
		if gotFilter.CategoryID == nil || *gotFilter.CategoryID != 4 {
			t.Errorf("unexpected category %v", gotFilter.CategoryID)
		}
		result := parseJSON(t, rec)
		if result["total_items"] != float64(6) || result["total_pages"] != float64(2) {
			t.Errorf("unexpected page metadata %v", result)
		}
	})

	t.Run("leaves absent filters nil", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		svc := &mockTransactionService{
			getUserTransactionsFn: func(_ uint, _ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.TransactionView], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse[models.TransactionView](nil, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.StartDate != nil || gotFilter.EndDate != nil || gotFilter.Type != nil || gotFilter.CategoryID != nil {
			t.Errorf("expected empty filter, got %+v", gotFilter)
		}
		if data, ok := parseJSON(t, rec)["data"].([]interface{}); !ok || len(data) != 0 {
			t.Errorf("expected empty data array")
		}
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		var got services.TransactionUpdate
		svc := &mockTransactionService{
			updateTransactionFn: func(userID, id uint, update services.TransactionUpdate) (*models.Transaction, error) {
				got = update
				return &models.Transaction{Base: models.Base{ID: id}, UserID: userID}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/3", `{"amount":"42.50","date":"2024-02-29"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Amount == nil || !got.Amount.Equal(decimal.RequireFromString("42.5")) {
			t.Errorf("unexpected amount %v", got.Amount)
		}
		if got.Date == nil || got.Date.String() != "2024-02-29" {
			t.Errorf("unexpected date %v", got.Date)
		}
		if got.CategoryID != nil || got.Type != nil || got.Description != nil {
			t.Errorf("expected untouched fields to stay nil, got %+v", got)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockTransactionService{
			updateTransactionFn: func(_, _ uint, _ services.TransactionUpdate) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/3", `{"description":"x"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionHandler_GetAndDelete(t *testing.T) {
	svc := &mockTransactionService{
		getTransactionByIDFn: func(_, id uint) (*models.Transaction, error) {
			if id != 1 {
				return nil, apperrors.ErrTransactionNotFound
			}
			return &models.Transaction{Base: models.Base{ID: 1}, Type: models.TransactionTypeIncome}, nil
		},
		deleteTransactionFn: func(_, id uint) error {
			if id != 1 {
				return apperrors.ErrTransactionNotFound
			}
			return nil
		},
	}
	r := setupTransactionRouter(NewTransactionHandler(svc))

	if rec := doRequest(r, "GET", "/transactions/1", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec := doRequest(r, "GET", "/transactions/2", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec := doRequest(r, "DELETE", "/transactions/1", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec := doRequest(r, "DELETE", "/transactions/0", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
