package matchrequest_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

type mockRequestRepository struct {
	requests map[uuid.UUID]*entity.MatchRequest
	users    *mockUserRepository
}

func newMockRequestRepository(users *mockUserRepository) *mockRequestRepository {
	return &mockRequestRepository{requests: make(map[uuid.UUID]*entity.MatchRequest), users: users}
}

func (m *mockRequestRepository) Create(ctx context.Context, r *entity.MatchRequest) error {
	cp := *r
	m.requests[r.ID] = &cp
	return nil
}

func (m *mockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MatchRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, apperror.ErrMatchRequestMissing
	}
	cp := *r
	cp.Sender = m.users.summary(r.SenderID)
	cp.Receiver = m.users.summary(r.ReceiverID)
	return &cp, nil
}

func (m *mockRequestRepository) ExistsPending(ctx context.Context, senderID, receiverID uuid.UUID, offered, wanted string) (bool, error) {
	for _, r := range m.requests {
		if r.SenderID == senderID && r.ReceiverID == receiverID &&
			r.SkillOffered == offered && r.SkillWanted == wanted && r.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRequestRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to valueobject.MatchRequestStatus) (bool, error) {
	r, ok := m.requests[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	return true, nil
}

func (m *mockRequestRepository) List(ctx context.Context, f repository.MatchRequestFilter) ([]*entity.MatchRequest, int, error) {
	var all []*entity.MatchRequest
	for _, r := range m.requests {
		if f.ReceiverID != nil && r.ReceiverID != *f.ReceiverID {
			continue
		}
		if f.SenderID != nil && r.SenderID != *f.SenderID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		cp := *r
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if f.Offset >= total {
		return []*entity.MatchRequest{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (m *mockRequestRepository) CountByReceiver(ctx context.Context, receiverID uuid.UUID, status valueobject.MatchRequestStatus) (int, error) {
	n := 0
	for _, r := range m.requests {
		if r.ReceiverID == receiverID && r.Status == status {
			n++
		}
	}
	return n, nil
}

type mockUserRepository struct {
	users map[uuid.UUID]*entity.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepository) add(name string) *entity.User {
	u := &entity.User{ID: uuid.New(), Name: name, Email: name + "@example.com", IsActive: true}
	m.users[u.ID] = u
	return u
}

func (m *mockUserRepository) summary(id uuid.UUID) *entity.UserSummary {
	if u, ok := m.users[id]; ok {
		return u.Summary()
	}
	return nil
}

func (m *mockUserRepository) Create(ctx context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) Search(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) AddMatch(ctx context.Context, userID, matchedUserID uuid.UUID) error {
	u, ok := m.users[userID]
	if !ok {
		return apperror.ErrUserNotFound
	}
	if !u.HasMatch(matchedUserID) {
		u.Matches = append(u.Matches, matchedUserID)
	}
	return nil
}

func (m *mockUserRepository) RemoveMatch(ctx context.Context, userID, matchedUserID uuid.UUID) error {
	u, ok := m.users[userID]
	if !ok {
		return nil
	}
	kept := u.Matches[:0]
	for _, id := range u.Matches {
		if id != matchedUserID {
			kept = append(kept, id)
		}
	}
	u.Matches = kept
	return nil
}

var errStoreDown = errors.New("match store unavailable")

type mockMatchRepository struct {
	matches    map[uuid.UUID]*entity.Match
	failCreate error
}

func newMockMatchRepository() *mockMatchRepository {
	return &mockMatchRepository{matches: make(map[uuid.UUID]*entity.Match)}
}

func (m *mockMatchRepository) Create(ctx context.Context, match *entity.Match) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	cp := *match
	m.matches[match.ID] = &cp
	return nil
}

func (m *mockMatchRepository) UpdateStatus(ctx context.Context, match *entity.Match) error {
	cp := *match
	m.matches[match.ID] = &cp
	return nil
}

func (m *mockMatchRepository) Complete(ctx context.Context, match *entity.Match) (bool, error) {
	stored, ok := m.matches[match.ID]
	if !ok {
		return false, apperror.ErrMatchNotFound
	}
	changed := stored.Status != valueobject.MatchStatusCompleted
	stored.Status = valueobject.MatchStatusCompleted
	return changed, nil
}

func (m *mockMatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.matches, id)
	return nil
}

func (m *mockMatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Match, error) {
	if match, ok := m.matches[id]; ok {
		cp := *match
		return &cp, nil
	}
	return nil, apperror.ErrMatchNotFound
}

func (m *mockMatchRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*entity.Match, error) {
	for _, match := range m.matches {
		if match.Involves(a) && match.Involves(b) {
			cp := *match
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockMatchRepository) ExistsForListing(ctx context.Context, a, b, listingID uuid.UUID) (bool, error) {
	return false, nil
}

func (m *mockMatchRepository) List(ctx context.Context, f repository.MatchFilter) ([]*entity.Match, int, error) {
	return nil, 0, nil
}

type sentEvent struct {
	UserID uuid.UUID
	Event  string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (n *recordingNotifier) Notify(userID uuid.UUID, event string, data map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sentEvent{UserID: userID, Event: event})
}
