package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-backend/internal/cache"
	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/http/middleware"
	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
	"github.com/skillswap/skillswap-backend/internal/usecase/listing"
	"github.com/skillswap/skillswap-backend/internal/usecase/matchrequest"
	"github.com/skillswap/skillswap-backend/internal/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(response.JSONTagName)
		if err := validation.RegisterTags(v); err != nil {
			panic(err)
		}
	}
	os.Exit(m.Run())
}

type fakeRequestRepo struct {
	repository.MatchRequestRepository
	stored     map[uuid.UUID]*entity.MatchRequest
	pending    int
	countCalls int
	lastFilter repository.MatchRequestFilter
	listTotal  int
}

func (f *fakeRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.MatchRequest, error) {
	if r, ok := f.stored[id]; ok {
		return r, nil
	}
	return nil, apperror.ErrMatchRequestMissing
}

func (f *fakeRequestRepo) CountByReceiver(ctx context.Context, receiverID uuid.UUID, status valueobject.MatchRequestStatus) (int, error) {
	f.countCalls++
	return f.pending, nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filter repository.MatchRequestFilter) ([]*entity.MatchRequest, int, error) {
	f.lastFilter = filter
	req, _ := entity.NewMatchRequest(uuid.New(), *filter.ReceiverID, "Guitar", "Spanish", "")
	return []*entity.MatchRequest{req}, f.listTotal, nil
}

func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Next()
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestMatchRequestHandler_Accept_InvalidID(t *testing.T) {
	r := gin.New()
	h := &MatchRequestHandler{}
	r.PUT("/match-requests/:id/accept", withUser(uuid.New()), h.Accept)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/match-requests/not-a-uuid/accept", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID_FORMAT", decode(t, w)["error"])
}

func TestMatchRequestHandler_Accept_ErrorCodes(t *testing.T) {
	receiver := uuid.New()
	accepted, _ := entity.NewMatchRequest(uuid.New(), receiver, "Guitar", "Spanish", "")
	_ = accepted.Accept()
	repo := &fakeRequestRepo{stored: map[uuid.UUID]*entity.MatchRequest{accepted.ID: accepted}}

	h := &MatchRequestHandler{acceptUC: matchrequest.NewAcceptUseCase(repo, nil, nil, nil, nil)}
	r := gin.New()
	r.PUT("/match-requests/:id/accept", func(c *gin.Context) {
		if raw := c.GetHeader("X-User"); raw != "" {
			c.Set(middleware.ContextUserIDKey, uuid.MustParse(raw))
		}
	}, h.Accept)

	cases := []struct {
		name   string
		id     uuid.UUID
		user   uuid.UUID
		status int
		code   string
	}{
		{"missing", uuid.New(), receiver, http.StatusNotFound, "REQUEST_NOT_FOUND"},
		{"not receiver", accepted.ID, uuid.New(), http.StatusForbidden, "NOT_AUTHORIZED"},
		{"already accepted", accepted.ID, receiver, http.StatusBadRequest, "ALREADY_PROCESSED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPut, "/match-requests/"+tc.id.String()+"/accept", nil)
			req.Header.Set("X-User", tc.user.String())
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decode(t, w)["error"])
		})
	}
}

func TestMatchRequestHandler_Count_IsCached(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &fakeRequestRepo{pending: 3}
	counter := matchrequest.NewPendingCounter(repo, cache.NewMemoryStore(ctx), time.Minute)
	h := &MatchRequestHandler{countUC: matchrequest.NewCountPendingUseCase(counter)}

	r := gin.New()
	r.GET("/match-requests/count", withUser(uuid.New()), h.Count)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/match-requests/count", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 3, decode(t, w)["count"])
	}
	assert.Equal(t, 1, repo.countCalls)
}

func TestMatchRequestHandler_Received_Paginated(t *testing.T) {
	repo := &fakeRequestRepo{listTotal: 25}
	h := &MatchRequestHandler{listUC: matchrequest.NewListUseCase(repo)}
	r := gin.New()
	r.GET("/match-requests/received", withUser(uuid.New()), h.Received)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/match-requests/received?page=2", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["items"], 1)
	assert.Equal(t, map[string]any{"current": 2.0, "pages": 3.0, "total": 25.0}, body["pagination"])
	assert.Equal(t, valueobject.MatchRequestStatusPending, repo.lastFilter.Status)
	assert.Equal(t, 10, repo.lastFilter.Offset)
}

func TestMatchRequestHandler_Send_ValidationDetails(t *testing.T) {
	h := &MatchRequestHandler{}
	r := gin.New()
	r.POST("/match-requests", withUser(uuid.New()), h.Send)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/match-requests", strings.NewReader(`{"receiverId":"x","skillOffered":"Guitar"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])

	fields := map[string]bool{}
	for _, d := range body["details"].([]any) {
		fields[d.(map[string]any)["field"].(string)] = true
	}
	assert.True(t, fields["receiverId"])
	assert.True(t, fields["skillWanted"])
}

func TestMatchRequestHandler_RequiresUser(t *testing.T) {
	h := &MatchRequestHandler{}
	r := gin.New()
	r.GET("/match-requests/count", h.Count)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/match-requests/count", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token, authorization denied", decode(t, w)["message"])
}

type fakeListingRepo struct {
	repository.SkillListingRepository
	listing *entity.SkillListing
}

func (f *fakeListingRepo) IncrementViews(ctx context.Context, id uuid.UUID) (*entity.SkillListing, error) {
	if f.listing == nil || f.listing.ID != id || !f.listing.IsActive {
		return nil, apperror.ErrListingNotFound
	}
	f.listing.Views++
	return f.listing, nil
}

func TestListingHandler_Get(t *testing.T) {
	l, err := entity.NewSkillListing(uuid.New(), entity.SkillListingFields{
		Title:          "Guitar lessons",
		Description:    "Acoustic guitar for complete beginners",
		Category:       "Music",
		Level:          "Beginner",
		TimeCommitment: "2h/week",
		Availability:   "Evenings",
		Location:       "Remote",
	})
	require.NoError(t, err)

	h := &ListingHandler{getUC: listing.NewGetUseCase(&fakeListingRepo{listing: l})}
	r := gin.New()
	r.GET("/skills/:id", h.Get)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/skills/"+l.ID.String(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	listingBody := decode(t, w)["skillListing"].(map[string]any)
	assert.EqualValues(t, 1, listingBody["views"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/skills/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Skill listing not found", decode(t, w)["message"])
}

func TestListingHandler_List_InvalidOwner(t *testing.T) {
	h := &ListingHandler{}
	r := gin.New()
	r.GET("/skills", h.List)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/skills?userId=bad", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID_FORMAT", decode(t, w)["error"])
}

func TestListingHandler_Create_RejectsUnknownCategory(t *testing.T) {
	h := &ListingHandler{}
	r := gin.New()
	r.POST("/skills", withUser(uuid.New()), h.Create)

	payload := `{"title":"Guitar lessons","description":"Acoustic guitar for complete beginners","category":"Gardening","level":"Beginner","timeCommitment":"2h","availability":"Evenings","location":"Remote"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/skills", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invalid category", body["message"])
}
