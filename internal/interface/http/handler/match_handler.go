package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/interface/http/dto"
	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
	"github.com/skillswap/skillswap-backend/internal/usecase/match"
)

type MatchHandler struct {
	createUC       *match.CreateUseCase
	listUC         *match.ListUseCase
	updateStatusUC *match.UpdateStatusUseCase
	deleteUC       *match.DeleteUseCase
}

func NewMatchHandler(
	createUC *match.CreateUseCase,
	listUC *match.ListUseCase,
	updateStatusUC *match.UpdateStatusUseCase,
	deleteUC *match.DeleteUseCase,
) *MatchHandler {
	return &MatchHandler{
		createUC:       createUC,
		listUC:         listUC,
		updateStatusUC: updateStatusUC,
		deleteUC:       deleteUC,
	}
}

// Create обрабатывает POST /api/matches: матч по объявлению.
func (h *MatchHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	listingID, err := uuid.Parse(req.SkillListingID)
	if err != nil {
		response.Error(c, apperror.ErrInvalidID)
		return
	}

	m, err := h.createUC.Execute(c.Request.Context(), match.CreateInput{
		UserID:         userID,
		SkillListingID: listingID,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Match created successfully",
		"match":   dto.ToMatchResponse(m, userID),
	})
}

func (h *MatchHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), match.ListInput{
		UserID: userID,
		Status: c.Query("status"),
		Page:   parseIntQuery(c, "page", 1),
		Limit:  parseIntQuery(c, "limit", match.DefaultPageSize),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToMatchResponses(result.Items, userID), result.Page, result.Total)
}

func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	m, err := h.updateStatusUC.Execute(c.Request.Context(), match.UpdateStatusInput{
		MatchID: id,
		UserID:  userID,
		Status:  req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Match status updated successfully",
		"match":   dto.ToMatchResponse(m, userID),
	})
}

func (h *MatchHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Match deleted successfully"})
}
