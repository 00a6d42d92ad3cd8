package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/interface/http/dto"
	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
	"github.com/skillswap/skillswap-backend/internal/usecase/matchrequest"
)

type MatchRequestHandler struct {
	sendUC    *matchrequest.SendUseCase
	listUC    *matchrequest.ListUseCase
	acceptUC  *matchrequest.AcceptUseCase
	declineUC *matchrequest.DeclineUseCase
	countUC   *matchrequest.CountPendingUseCase
}

func NewMatchRequestHandler(
	sendUC *matchrequest.SendUseCase,
	listUC *matchrequest.ListUseCase,
	acceptUC *matchrequest.AcceptUseCase,
	declineUC *matchrequest.DeclineUseCase,
	countUC *matchrequest.CountPendingUseCase,
) *MatchRequestHandler {
	return &MatchRequestHandler{
		sendUC:    sendUC,
		listUC:    listUC,
		acceptUC:  acceptUC,
		declineUC: declineUC,
		countUC:   countUC,
	}
}

func (h *MatchRequestHandler) Send(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SendMatchRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		response.Error(c, apperror.ErrInvalidID)
		return
	}

	created, err := h.sendUC.Execute(c.Request.Context(), matchrequest.SendInput{
		SenderID:     userID,
		ReceiverID:   receiverID,
		SkillOffered: req.SkillOffered,
		SkillWanted:  req.SkillWanted,
		Message:      req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Match request sent successfully",
		"request": dto.ToMatchRequestResponse(created),
	})
}

func (h *MatchRequestHandler) Received(c *gin.Context) {
	h.list(c, h.listUC.Received)
}

func (h *MatchRequestHandler) Sent(c *gin.Context) {
	h.list(c, h.listUC.Sent)
}

type listFunc func(ctx context.Context, input matchrequest.ListInput) (*matchrequest.ListResult, error)

func (h *MatchRequestHandler) list(c *gin.Context, fn listFunc) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := fn(c.Request.Context(), matchrequest.ListInput{
		UserID: userID,
		Status: c.Query("status"),
		Page:   parseIntQuery(c, "page", 1),
		Limit:  parseIntQuery(c, "limit", matchrequest.DefaultPageSize),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToMatchRequestResponses(result.Items), result.Page, result.Total)
}

// Accept обрабатывает PUT /api/match-requests/:id/accept.
func (h *MatchRequestHandler) Accept(c *gin.Context) {
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

	result, err := h.acceptUC.Execute(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"success": true,
		"message": "Match request accepted successfully",
		"request": dto.ToMatchRequestResponse(result.Request),
		"match":   dto.ToMatchResponse(result.Match, userID),
	})
}

func (h *MatchRequestHandler) Decline(c *gin.Context) {
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

	declined, err := h.declineUC.Execute(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"success": true,
		"message": "Match request declined",
		"request": dto.ToMatchRequestResponse(declined),
	})
}

func (h *MatchRequestHandler) Count(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	count, err := h.countUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"count": count})
}
