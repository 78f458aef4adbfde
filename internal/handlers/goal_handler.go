package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finanmind/internal/models"
	"finanmind/internal/services"
)

// GoalHandler handles savings goals and their contribution ledger.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Title         string          `json:"title" binding:"required,max=200"`
	TargetAmount  decimal.Decimal `json:"target_amount" swaggertype:"string" example:"5000.00"`
	InitialAmount decimal.Decimal `json:"initial_amount" swaggertype:"string" example:"0"`
	Deadline      string          `json:"deadline" binding:"omitempty,datetime=2006-01-02" example:"2024-12-31"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
type UpdateGoalRequest struct {
	Title        *string          `json:"title" binding:"omitempty,min=1,max=200"`
	TargetAmount *decimal.Decimal `json:"target_amount" swaggertype:"string"`
	Deadline     string           `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

// ContributeRequest represents a contribution to a goal.
type ContributeRequest struct {
	GoalID      uint            `json:"goal_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"150.00"`
	Description string          `json:"description" binding:"max=500"`
	Date        string          `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2024-03-15"`
}

// GoalResponse is a goal with its computed progress percentage.
type GoalResponse struct {
	models.Goal
	Progress decimal.Decimal `json:"progress" swaggertype:"string"`
}

func newGoalResponse(goal *models.Goal) GoalResponse {
	return GoalResponse{Goal: *goal, Progress: goal.Progress()}
}

func optionalDate(value, field string) (*models.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := parseDate(value, field)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateGoal handles the creation of a new goal
// @Summary     Create a goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} GoalResponse "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	deadline, err := optionalDate(req.Deadline, "deadline")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(userID, req.Title, req.TargetAmount, req.InitialAmount, deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionGoalCreate, "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"title": goal.Title, "target_amount": goal.TargetAmount.String()})

	c.JSON(http.StatusCreated, gin.H{"goal": newGoalResponse(goal)})
}

// GetUserGoals lists the user's goals
// @Summary     List goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} GoalResponse "Goals, newest first"
// @Router      /goals [get]
func (h *GoalHandler) GetUserGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		resp = append(resp, newGoalResponse(&goals[i]))
	}

	c.JSON(http.StatusOK, gin.H{"goals": resp})
}

// GetGoalByID returns one goal
// @Summary     Get a goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} GoalResponse "Goal"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": newGoalResponse(goal)})
}

// UpdateGoal changes a goal's title, target or deadline
// @Summary     Update a goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to change"
// @Success     200 {object} GoalResponse "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	deadline, err := optionalDate(req.Deadline, "deadline")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, services.GoalUpdate{
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Deadline:     deadline,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": newGoalResponse(goal)})
}

// DeleteGoal deletes a goal with its ledger
// @Summary     Delete a goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} map[string]string "Goal deleted"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionGoalDelete, "goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

// Contribute adds an amount to a goal and records it in the ledger
// @Summary     Contribute to a goal
// @Description Increments the goal balance and appends a ledger entry atomically
// @Tags        goal-transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ContributeRequest true "Contribution"
// @Success     201 {object} map[string]interface{} "Updated goal and ledger entry"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goal-transactions [post]
func (h *GoalHandler) Contribute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	date, err := parseDate(req.Date, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, entry, err := h.goalService.Contribute(userID, req.GoalID, req.Amount, req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionGoalContribution, "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"amount": entry.Amount.String(), "ledger_id": entry.ID})

	c.JSON(http.StatusCreated, gin.H{
		"goal":        newGoalResponse(goal),
		"transaction": entry,
	})
}

// GetGoalLedger lists a goal's contributions
// @Summary     Goal ledger
// @Tags        goal-transactions
// @Produce     json
// @Security    BearerAuth
// @Param       goal_id path int true "Goal ID"
// @Success     200 {array} models.GoalTransaction "Ledger, newest first"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goal-transactions/goal/{goal_id} [get]
func (h *GoalHandler) GetGoalLedger(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "goal_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.goalService.GetGoalLedger(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": entries})
}

// GetGoalReport returns a goal's ledger with count, total and average
// @Summary     Goal report
// @Tags        goal-transactions
// @Produce     json
// @Security    BearerAuth
// @Param       goal_id path int true "Goal ID"
// @Success     200 {object} services.GoalReport "Goal report"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goal-transactions/report/{goal_id} [get]
func (h *GoalHandler) GetGoalReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "goal_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.goalService.GetGoalReport(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
