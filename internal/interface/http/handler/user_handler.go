package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-backend/internal/interface/http/dto"
	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/usecase/user"
)

type UserHandler struct {
	getUC           *user.GetUseCase
	searchUC        *user.SearchUseCase
	updateProfileUC *user.UpdateProfileUseCase
}

func NewUserHandler(getUC *user.GetUseCase, searchUC *user.SearchUseCase, updateProfileUC *user.UpdateProfileUseCase) *UserHandler {
	return &UserHandler{
		getUC:           getUC,
		searchUC:        searchUC,
		updateProfileUC: updateProfileUC,
	}
}

// Get публичный профиль GET /api/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	u, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"user": dto.ToUserResponse(u)})
}

func (h *UserHandler) Search(c *gin.Context) {
	result, err := h.searchUC.Execute(c.Request.Context(), user.SearchInput{
		Search:   c.Query("search"),
		Skills:   c.Query("skills"),
		Location: c.Query("location"),
		Page:     parseIntQuery(c, "page", 1),
		Limit:    parseIntQuery(c, "limit", user.DefaultPageSize),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToUserResponses(result.Items), result.Page, result.Total)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	u, err := h.updateProfileUC.Execute(c.Request.Context(), userID, req.ToUpdate())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Profile updated successfully",
		"user":    dto.ToProfileResponse(u),
	})
}
