package usecase

import (
	"context"
	"strings"
	"sync"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/internal/data/repository"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory UserRepository keyed by user id.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*entity.User, 0, len(f.users))
	for _, user := range f.users {
		copied := *user
		all = append(all, &copied)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) UpdatePhoto(ctx context.Context, id uuid.UUID, photoURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.ProfilePhoto = &photoURL
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

// fakeResetRepo is an in-memory PasswordResetRepository. ConsumeAndUpdate
// mimics the transactional behavior: the token row is gone afterwards and
// the password lands in the paired user repo.
type fakeResetRepo struct {
	mu     sync.Mutex
	resets map[uuid.UUID]*entity.PasswordReset
	users  *fakeUserRepo
}

func newFakeResetRepo(users *fakeUserRepo) *fakeResetRepo {
	return &fakeResetRepo{
		resets: make(map[uuid.UUID]*entity.PasswordReset),
		users:  users,
	}
}

func (f *fakeResetRepo) Create(ctx context.Context, reset *entity.PasswordReset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *reset
	f.resets[reset.ID] = &copied
	return nil
}

func (f *fakeResetRepo) FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reset := range f.resets {
		if reset.Token == token {
			copied := *reset
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeResetRepo) ConsumeAndUpdatePassword(ctx context.Context, resetID, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	delete(f.resets, resetID)
	f.mu.Unlock()
	return f.users.UpdatePassword(ctx, userID, passwordHash)
}

// fakeMailer records sent messages; fails when failWith is set.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	failWith error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func (f *fakeMailer) lastSent() (sentMail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMail{}, false
	}
	return f.sent[len(f.sent)-1], true
}

func testRepos(users *fakeUserRepo, resets *fakeResetRepo) *repository.Repository {
	return &repository.Repository{
		User:          users,
		PasswordReset: resets,
	}
}
