package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/interface/http/dto"
	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
	"github.com/skillswap/skillswap-backend/internal/usecase/listing"
)

type ListingHandler struct {
	createUC *listing.CreateUseCase
	getUC    *listing.GetUseCase
	updateUC *listing.UpdateUseCase
	deleteUC *listing.DeleteUseCase
	listUC   *listing.ListUseCase
}

func NewListingHandler(
	createUC *listing.CreateUseCase,
	getUC *listing.GetUseCase,
	updateUC *listing.UpdateUseCase,
	deleteUC *listing.DeleteUseCase,
	listUC *listing.ListUseCase,
) *ListingHandler {
	return &ListingHandler{
		createUC: createUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
	}
}

// List обрабатывает GET /api/skills. Авторизация необязательна.
func (h *ListingHandler) List(c *gin.Context) {
	input := listing.ListInput{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Level:    c.Query("level"),
		Location: c.Query("location"),
		Page:     parseIntQuery(c, "page", 1),
		Limit:    parseIntQuery(c, "limit", listing.DefaultPageSize),
		Viewer:   viewerID(c),
	}
	if raw := c.Query("userId"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.ErrInvalidID)
			return
		}
		input.OwnerID = &ownerID
	}

	result, err := h.listUC.Execute(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToListingListItems(result.Items), result.Page, result.Total)
}

func (h *ListingHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	l, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"skillListing": dto.ToListingResponse(l)})
}

func (h *ListingHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	l, err := h.createUC.Execute(c.Request.Context(), userID, req.ToFields())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message":      "Skill listing created successfully",
		"skillListing": dto.ToListingResponse(l),
	})
}

func (h *ListingHandler) Update(c *gin.Context) {
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

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	l, err := h.updateUC.Execute(c.Request.Context(), id, userID, req.ToUpdate())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"message":      "Skill listing updated successfully",
		"skillListing": dto.ToListingResponse(l),
	})
}

func (h *ListingHandler) Delete(c *gin.Context) {
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

	response.OK(c, gin.H{"message": "Skill listing deleted successfully"})
}
