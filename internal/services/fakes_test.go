package services_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fardinbaf/scamguard-backend/internal/models"
	"github.com/fardinbaf/scamguard-backend/internal/store"
	"github.com/google/uuid"
)

// fakeStore is an in-memory implementation of every store interface.
type fakeStore struct {
	mu       sync.Mutex
	reports  map[uuid.UUID]*models.Report
	evidence map[uuid.UUID][]models.EvidenceFile
	comments []*models.Comment
	users    map[uuid.UUID]*models.User
	tokens   map[string]*models.RefreshToken
	ad       *models.AdvertisementConfig

	lastFilter        store.ReportFilter
	statusUpdateCalls int
	profileSaves      int

	failCreateReport bool
	failAll          bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reports:  make(map[uuid.UUID]*models.Report),
		evidence: make(map[uuid.UUID][]models.EvidenceFile),
		users:    make(map[uuid.UUID]*models.User),
		tokens:   make(map[string]*models.RefreshToken),
	}
}

var errStoreDown = errors.New("store unavailable")

func (f *fakeStore) CreateReport(_ context.Context, r *models.Report, evidence []models.EvidenceFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateReport || f.failAll {
		return errStoreDown
	}
	cp := *r
	f.reports[r.ID] = &cp
	f.evidence[r.ID] = append([]models.EvidenceFile(nil), evidence...)
	return nil
}

func (f *fakeStore) ReportByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	r, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	cp.EvidenceFiles = append([]models.EvidenceFile(nil), f.evidence[id]...)
	if u, ok := f.users[r.ReportedByID]; ok {
		cp.ReporterIdentifier = u.Identifier
	}
	return &cp, nil
}

func (f *fakeStore) SearchReports(_ context.Context, filter store.ReportFilter) ([]models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	f.lastFilter = filter

	var out []models.Report
	for _, r := range f.reports {
		if filter.Keyword != "" {
			kw := strings.ToLower(filter.Keyword)
			if !strings.Contains(strings.ToLower(r.Title), kw) &&
				!strings.Contains(strings.ToLower(r.Description), kw) {
				continue
			}
		}
		if filter.TargetType != "" && r.TargetType != filter.TargetType {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				if r.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		cp := *r
		cp.EvidenceFiles = append([]models.EvidenceFile(nil), f.evidence[r.ID]...)
		out = append(out, cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func (f *fakeStore) UpdateReportStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	r, ok := f.reports[id]
	if !ok {
		return errStoreDown
	}
	f.statusUpdateCalls++
	r.Status = status
	return nil
}

func (f *fakeStore) DeleteReportCascade(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	delete(f.reports, id)
	delete(f.evidence, id)
	kept := f.comments[:0]
	for _, c := range f.comments {
		if c.ReportID != id {
			kept = append(kept, c)
		}
	}
	f.comments = kept
	return nil
}

func (f *fakeStore) EvidencePaths(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var paths []string
	for _, files := range f.evidence {
		for _, ev := range files {
			paths = append(paths, ev.FilePath)
		}
	}
	return paths, nil
}

func (f *fakeStore) CreateComment(_ context.Context, c *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	cp := *c
	f.comments = append(f.comments, &cp)
	return nil
}

func (f *fakeStore) CommentsByReport(_ context.Context, reportID uuid.UUID) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for _, c := range f.comments {
		if c.ReportID != reportID {
			continue
		}
		cp := *c
		if u, ok := f.users[c.UserID]; ok {
			cp.UserIdentifier = u.Identifier
		}
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeStore) ProfileByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) ProfileByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	for _, u := range f.users {
		if u.Identifier == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateProfile(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) SaveProfile(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileSaves++
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) ListProfiles(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) CreateRefreshToken(_ context.Context, t *models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.tokens[t.TokenHash] = &cp
	return nil
}

func (f *fakeStore) RefreshTokenByHash(_ context.Context, hash string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[hash]
	if !ok || t.Revoked {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) RevokeRefreshToken(_ context.Context, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tokens[hash]; ok {
		t.Revoked = true
	}
	return nil
}

func (f *fakeStore) AdConfig(_ context.Context) (*models.AdvertisementConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ad == nil {
		return nil, nil
	}
	cp := *f.ad
	return &cp, nil
}

func (f *fakeStore) SaveAdConfig(_ context.Context, cfg *models.AdvertisementConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *cfg
	f.ad = &cp
	return nil
}

// fakeBlobs is an in-memory blob store.
type fakeBlobs struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	failPath string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{blobs: make(map[string][]byte)}
}

func (b *fakeBlobs) Upload(path string, r io.Reader) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failPath != "" && strings.Contains(path, b.failPath) {
		return errors.New("blob store unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.blobs[path] = data
	return nil
}

func (b *fakeBlobs) Remove(paths []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range paths {
		delete(b.blobs, p)
	}
	return nil
}

func (b *fakeBlobs) PublicURL(path string) string {
	return "http://files.test/" + path
}

func (b *fakeBlobs) List(prefix string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for p := range b.blobs {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (b *fakeBlobs) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.blobs)
}
