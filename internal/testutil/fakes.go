// Package testutil provides in-process stand-ins for the managed services
// and a ready Server for handler tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/deppfellow/wedding-backend/internal/lib/identity"
	"github.com/deppfellow/wedding-backend/internal/lib/job"
	"github.com/deppfellow/wedding-backend/internal/lib/media"
)

// FakeIdentity is an identity provider backed by a map.
type FakeIdentity struct {
	mu       sync.Mutex
	users    map[string]string
	tokens   map[string]identity.Identity
	VerifyFn func(token string) (*identity.Identity, error)
}

func NewFakeIdentity() *FakeIdentity {
	return &FakeIdentity{
		users:  make(map[string]string),
		tokens: make(map[string]identity.Identity),
	}
}

// AddUser registers an account and returns a valid token for it.
func (f *FakeIdentity) AddUser(email, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = password
	return f.issue(email)
}

func (f *FakeIdentity) SignUp(_ context.Context, email, password string) (*identity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[email]; ok {
		return nil, identity.ErrEmailExists
	}
	if len(password) < 6 {
		return nil, identity.ErrWeakPassword
	}
	f.users[email] = password

	return &identity.Session{Token: f.issue(email), UserID: "uid-" + email, Email: email}, nil
}

func (f *FakeIdentity) SignIn(_ context.Context, email, password string) (*identity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if stored, ok := f.users[email]; !ok || stored != password {
		return nil, identity.ErrInvalidCredentials
	}

	return &identity.Session{Token: f.issue(email), UserID: "uid-" + email, Email: email}, nil
}

func (f *FakeIdentity) VerifyToken(_ context.Context, token string) (*identity.Identity, error) {
	if f.VerifyFn != nil {
		return f.VerifyFn(token)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.tokens[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return &id, nil
}

func (f *FakeIdentity) issue(email string) string {
	token := "token-" + email
	f.tokens[token] = identity.Identity{UserID: "uid-" + email, Email: email}
	return token
}

// FakeMediaHost stores uploads in memory.
type FakeMediaHost struct {
	mu        sync.Mutex
	seq       int
	Uploads   map[string][]byte
	Deleted   []string
	UploadErr error
	DeleteErr error
}

func NewFakeMediaHost() *FakeMediaHost {
	return &FakeMediaHost{Uploads: make(map[string][]byte)}
}

func (h *FakeMediaHost) Upload(_ context.Context, r io.Reader, opts media.UploadOptions) (*media.Asset, error) {
	if h.UploadErr != nil {
		return nil, h.UploadErr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	key := fmt.Sprintf("wedding/%s/asset-%d", opts.Folder, h.seq)
	h.Uploads[key] = data

	return &media.Asset{
		URL:  "https://cdn.example.com/" + key,
		Key:  key,
		Type: opts.ResourceType,
	}, nil
}

func (h *FakeMediaHost) Delete(_ context.Context, key, _ string) error {
	if h.DeleteErr != nil {
		return h.DeleteErr
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.Uploads, key)
	h.Deleted = append(h.Deleted, key)
	return nil
}

func (h *FakeMediaHost) UploadCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq
}

// FakeQueue records enqueued tasks.
type FakeQueue struct {
	mu            sync.Mutex
	AssetDeletes  []string
	Notifications []job.RSVPEmailPayload
	Err           error
}

func (q *FakeQueue) EnqueueAssetDeletion(_ context.Context, key, _ string) error {
	if q.Err != nil {
		return q.Err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.AssetDeletes = append(q.AssetDeletes, key)
	return nil
}

func (q *FakeQueue) EnqueueRSVPNotification(_ context.Context, rsvp job.RSVPEmailPayload) error {
	if q.Err != nil {
		return q.Err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Notifications = append(q.Notifications, rsvp)
	return nil
}
