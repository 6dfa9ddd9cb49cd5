package state

import (
	"context"
	"sync"

	"profilehub/internal/client/api"
	"profilehub/internal/client/models"
	"profilehub/internal/logging"
)

// DefaultPerPage is the directory page size used when the caller does not
// pick one.
const DefaultPerPage = 10

// DirectoryPage is one fetched page of the user directory. Items and the
// pagination counters always come from the same fetch, so
// Pages == ceil(Total/PerPage) and len(Items) <= PerPage hold by
// construction.
type DirectoryPage struct {
	Items       []models.User
	Total       int
	Pages       int
	CurrentPage int
	PerPage     int
}

// Directory is a point-in-time snapshot of the directory region. Its user
// records are copies owned by this region; they are deliberately independent
// of the session's user record (bounded contexts, not shared references).
type Directory struct {
	Users        DirectoryPage
	CurrentUser  *models.User
	SelectedUser *models.User
	SearchQuery  string
	IsLoading    bool
	Err          string
}

// DirectoryStore owns the paginated listing, the caller's own profile, and
// the selected-user record. Each async operation type carries its own
// sequence number; a completion is applied only when it belongs to the
// newest dispatch of that type, so overlapping calls settle on the state of
// the last one dispatched regardless of network reordering.
type DirectoryStore struct {
	api api.Client
	log logging.Logger

	mu       sync.Mutex
	users    DirectoryPage
	current  *models.User
	selected *models.User
	search   string
	pending  int
	errMsg   string

	seqList    uint64
	seqGet     uint64
	seqUpdate  uint64
	seqProfile uint64
}

func NewDirectoryStore(client api.Client, log logging.Logger) *DirectoryStore {
	if log == nil {
		log = logging.Nop()
	}
	return &DirectoryStore{
		api:   client,
		log:   log.With("store", "directory"),
		users: DirectoryPage{CurrentPage: 1, PerPage: DefaultPerPage},
	}
}

// Snapshot returns a consistent deep copy of the directory region.
func (s *DirectoryStore) Snapshot() Directory {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.users
	if s.users.Items != nil {
		page.Items = make([]models.User, len(s.users.Items))
		for i := range s.users.Items {
			page.Items[i] = *s.users.Items[i].Clone()
		}
	}

	return Directory{
		Users:        page,
		CurrentUser:  s.current.Clone(),
		SelectedUser: s.selected.Clone(),
		SearchQuery:  s.search,
		IsLoading:    s.pending > 0,
		Err:          s.errMsg,
	}
}

// begin marks the dispatch phase of the operation type tracked by seq:
// bumps its sequence number, counts the pending request, and clears the
// previous error banner immediately.
func (s *DirectoryStore) begin(seq *uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	*seq++
	s.pending++
	s.errMsg = ""
	return *seq
}

// FetchUsers replaces the page and its pagination counters atomically. A
// failed fetch leaves the previously fetched page untouched.
func (s *DirectoryStore) FetchUsers(ctx context.Context, q api.ListQuery) error {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}

	id := s.begin(&s.seqList)

	page, err := s.api.ListUsers(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if id != s.seqList {
		// Superseded by a later dispatch: drop data and error alike.
		s.log.Debug(ctx, "stale user list response dropped", "page", q.Page)
		return err
	}
	if err != nil {
		s.errMsg = api.Message(err, "Failed to fetch users")
		s.log.Warn(ctx, "user list fetch failed", "error", err)
		return err
	}

	s.users = DirectoryPage{
		Items:       append([]models.User(nil), page.Users...),
		Total:       page.Total,
		Pages:       page.Pages,
		CurrentPage: page.CurrentPage,
		PerPage:     page.PerPage,
	}
	s.log.Debug(ctx, "user list fetched", "page", page.CurrentPage, "count", len(page.Users))
	return nil
}

// FetchUserByID populates the selected-user record, independent of the
// current page.
func (s *DirectoryStore) FetchUserByID(ctx context.Context, userID int64) error {
	id := s.begin(&s.seqGet)

	user, err := s.api.GetUser(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if id != s.seqGet {
		return err
	}
	if err != nil {
		s.errMsg = api.Message(err, "Failed to fetch user")
		s.log.Warn(ctx, "user fetch failed", "user_id", userID, "error", err)
		return err
	}

	s.selected = user.Clone()
	return nil
}

// GetCurrentProfile fetches the caller's own record into CurrentUser.
func (s *DirectoryStore) GetCurrentProfile(ctx context.Context) error {
	id := s.begin(&s.seqProfile)

	user, err := s.api.CurrentProfile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if id != s.seqProfile {
		return err
	}
	if err != nil {
		s.errMsg = api.Message(err, "Failed to fetch profile")
		s.log.Warn(ctx, "profile fetch failed", "error", err)
		return err
	}

	s.current = user.Clone()
	return nil
}

// UpdateUserProfile sends a partial update and, on success, installs the
// server's canonical record — never a client-side merge of the submitted
// fields. The same record also replaces the matching entry in the current
// page and the selected-user copy, so the directory never shows a stale
// version of a record it just received.
func (s *DirectoryStore) UpdateUserProfile(ctx context.Context, userID int64, upd api.ProfileUpdate) error {
	id := s.begin(&s.seqUpdate)

	user, err := s.api.UpdateUser(ctx, userID, upd)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if id != s.seqUpdate {
		return err
	}
	if err != nil {
		s.errMsg = api.Message(err, "Failed to update profile")
		s.log.Warn(ctx, "profile update failed", "user_id", userID, "error", err)
		return err
	}

	s.current = user.Clone()
	for i := range s.users.Items {
		if s.users.Items[i].ID == user.ID {
			s.users.Items[i] = *user.Clone()
		}
	}
	if s.selected != nil && s.selected.ID == user.ID {
		s.selected = user.Clone()
	}
	s.log.Info(ctx, "profile updated", "user_id", user.ID)
	return nil
}

// SetSearchQuery records the directory search text. Local only; callers
// dispatch FetchUsers to apply it.
func (s *DirectoryStore) SetSearchQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = text
}

// ClearSelectedUser drops the selected-user record.
func (s *DirectoryStore) ClearSelectedUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// ClearError drops the error banner without touching data or loading state.
func (s *DirectoryStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}
