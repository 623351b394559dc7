package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/shop-api/internal/core/domain"
)

// ---- stubs ----

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	order   []string
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Key()]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Key()] = user.Clone()
	r.order = append(r.order, user.Key())
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[domain.UsernameKey(username)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Key()]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.Key()] = user.Clone()
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.users[k].Clone())
	}
	return out, nil
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
	saveErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]string)}
}

func (s *stubSessionStore) Save(_ context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[token] = username
	return nil
}

func (s *stubSessionStore) Lookup(_ context.Context, token string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.sessions[token]
	return u, ok, nil
}

func (s *stubSessionStore) Delete(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return false, nil
	}
	delete(s.sessions, token)
	return true, nil
}

func newTestUserService() (*UserService, *stubUserRepo, *stubSessionStore) {
	repo := newStubUserRepo()
	sessions := newStubSessionStore()
	return NewUserService(repo, sessions, bcrypt.MinCost, zerolog.Nop()), repo, sessions
}

func mustRegister(t *testing.T, svc *UserService, username, password string) {
	t.Helper()
	ok, err := svc.Register(context.Background(), username, password)
	if err != nil || !ok {
		t.Fatalf("register %q: ok=%v err=%v", username, ok, err)
	}
}

// ---- registration ----

func TestUserService_RegisterThenLogin(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	mustRegister(t, svc, "alice", "Secret1")

	ok, err := svc.Register(ctx, "alice", "Other2")
	if err != nil || ok {
		t.Fatalf("second register must fail softly, got ok=%v err=%v", ok, err)
	}

	token, ok, err := svc.Login(ctx, "alice", "Secret1")
	if err != nil || !ok {
		t.Fatalf("login failed: ok=%v err=%v", ok, err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	token, ok, _ = svc.Login(ctx, "alice", "wrong")
	if ok || token != "" {
		t.Fatalf("wrong password must fail, got ok=%v token=%q", ok, token)
	}
}

func TestUserService_Register_CaseInsensitiveDuplicate(t *testing.T) {
	svc, _, _ := newTestUserService()
	mustRegister(t, svc, "Alice", "pw")

	ok, _ := svc.Register(context.Background(), "ALICE", "pw")
	if ok {
		t.Fatal("username uniqueness must ignore case")
	}
}

func TestUserService_Register_SoftFailures(t *testing.T) {
	svc, repo, _ := newTestUserService()
	ctx := context.Background()

	cases := []struct {
		name               string
		username, password string
		email              string
	}{
		{"empty username", "", "pw", ""},
		{"empty password", "bob", "", ""},
		{"too short", "ab", "pw", ""},
		{"too long", "abcdefghijklmnopqrstu", "pw", ""},
		{"bad characters", "bob!", "pw", ""},
		{"blank password", "bob", "   ", ""},
		{"bad email", "bob", "pw", "not-an-email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.RegisterWithEmail(ctx, tc.username, tc.password, tc.email)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok {
				t.Fatal("expected registration to be rejected")
			}
		})
	}
	if len(repo.users) != 0 {
		t.Fatalf("rejected registrations must not store users, got %d", len(repo.users))
	}
}

func TestUserService_RegisterWithEmail_StoresEmail(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	ok, _ := svc.RegisterWithEmail(ctx, "erin", "pw", "erin@example.com")
	if !ok {
		t.Fatal("expected registration to succeed")
	}
	u, _ := svc.GetProfile(ctx, "erin")
	if u == nil || u.Email != "erin@example.com" {
		t.Fatalf("unexpected profile: %+v", u)
	}
	if u.PasswordHash == "pw" {
		t.Fatal("password must be stored hashed")
	}
}

func TestUserService_Register_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestUserService()
	repo.findErr = errors.New("db down")

	ok, err := svc.Register(context.Background(), "frank", "pw")
	if ok || err == nil {
		t.Fatalf("expected infrastructure error, got ok=%v err=%v", ok, err)
	}
}

func TestUserService_Register_ConcurrentSameUsername(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := svc.Register(ctx, "race", "pw"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("exactly one registration must win, got %d", wins.Load())
	}
}

// ---- login & sessions ----

func TestUserService_Login_Failures(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()
	mustRegister(t, svc, "gina", "pw")

	if _, ok, _ := svc.Login(ctx, "", "pw"); ok {
		t.Fatal("empty username must fail")
	}
	if _, ok, _ := svc.Login(ctx, "gina", ""); ok {
		t.Fatal("empty password must fail")
	}
	if _, ok, err := svc.Login(ctx, "ghost", "pw"); ok || err != nil {
		t.Fatalf("unknown user must fail softly, got ok=%v err=%v", ok, err)
	}
	if _, ok, _ := svc.Login(ctx, "gina", "PW"); ok {
		t.Fatal("password comparison must be case-sensitive")
	}
}

func TestUserService_Login_CaseInsensitiveUsername(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()
	mustRegister(t, svc, "Hank", "pw")

	token, ok, _ := svc.Login(ctx, "hank", "pw")
	if !ok {
		t.Fatal("login should ignore username case")
	}
	name, ok, _ := svc.GetUsernameFromSession(ctx, token)
	if !ok || name != "hank" {
		t.Fatalf("session should resolve to lower-cased username, got %q", name)
	}
}

func TestUserService_Login_InactiveUser(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()
	mustRegister(t, svc, "ivy", "pw")

	if ok, _ := svc.DeleteProfile(ctx, "ivy"); !ok {
		t.Fatal("delete should succeed")
	}
	if _, ok, _ := svc.Login(ctx, "ivy", "pw"); ok {
		t.Fatal("inactive users cannot log in")
	}
}

func TestUserService_Login_MultipleTokens(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()
	mustRegister(t, svc, "jack", "pw")

	var tick int64
	svc.now = func() time.Time {
		tick++
		return time.Unix(0, tick)
	}

	t1, _, _ := svc.Login(ctx, "jack", "pw")
	t2, _, _ := svc.Login(ctx, "jack", "pw")
	if t1 == t2 {
		t.Fatal("each login must mint a distinct token")
	}

	for _, tok := range []string{t1, t2} {
		if ok, _ := svc.IsValidSession(ctx, tok); !ok {
			t.Fatalf("token %q should be valid", tok)
		}
	}

	if ok, _ := svc.Logout(ctx, t1); !ok {
		t.Fatal("logout should remove the token")
	}
	if ok, _ := svc.Logout(ctx, t1); ok {
		t.Fatal("second logout must report false")
	}
	if ok, _ := svc.IsValidSession(ctx, t1); ok {
		t.Fatal("logged out token must be invalid")
	}
	if ok, _ := svc.IsValidSession(ctx, t2); !ok {
		t.Fatal("other sessions must survive logout")
	}
}

func TestUserService_Login_SessionStoreError(t *testing.T) {
	svc, _, sessions := newTestUserService()
	mustRegister(t, svc, "kim", "pw")
	sessions.saveErr = errors.New("redis down")

	token, ok, err := svc.Login(context.Background(), "kim", "pw")
	if ok || token != "" || err == nil {
		t.Fatalf("expected error, got token=%q ok=%v err=%v", token, ok, err)
	}
}

func TestUserService_SessionLookups_EmptyToken(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	if ok, _ := svc.IsValidSession(ctx, ""); ok {
		t.Fatal("empty token is never valid")
	}
	if ok, _ := svc.Logout(ctx, ""); ok {
		t.Fatal("empty token cannot be logged out")
	}
}

// ---- profiles ----

func TestUserService_GetProfile_IncludesInactive(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()
	mustRegister(t, svc, "lena", "pw")
	_, _ = svc.DeleteProfile(ctx, "lena")

	u, err := svc.GetProfile(ctx, "LENA")
	if err != nil || u == nil {
		t.Fatalf("expected profile, got %v, %v", u, err)
	}
	if u.Active {
		t.Fatal("expected inactive profile")
	}

	missing, err := svc.GetProfile(ctx, "nobody")
	if missing != nil || err != nil {
		t.Fatalf("expected nil profile, got %v, %v", missing, err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()
	mustRegister(t, svc, "mona", "old")

	if ok, _ := svc.UpdateProfile(ctx, "ghost", "new"); ok {
		t.Fatal("updating a missing user must fail")
	}
	if ok, _ := svc.UpdateProfile(ctx, "mona", ""); ok {
		t.Fatal("empty password must be rejected")
	}
	if ok, _ := svc.UpdateProfile(ctx, "mona", "new"); !ok {
		t.Fatal("update should succeed")
	}

	if _, ok, _ := svc.Login(ctx, "mona", "old"); ok {
		t.Fatal("old password must stop working")
	}
	if _, ok, _ := svc.Login(ctx, "mona", "new"); !ok {
		t.Fatal("new password must work")
	}
}

func TestUserService_DeleteProfile_NotIdempotent(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()
	mustRegister(t, svc, "nina", "pw")

	if ok, _ := svc.DeleteProfile(ctx, "nina"); !ok {
		t.Fatal("first delete should succeed")
	}
	if ok, _ := svc.DeleteProfile(ctx, "nina"); ok {
		t.Fatal("deleting an inactive user must report false")
	}
	if ok, _ := svc.DeleteProfile(ctx, "ghost"); ok {
		t.Fatal("deleting a missing user must report false")
	}
}

func TestUserService_GetAllUsers_ActiveOnly(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()
	for _, name := range []string{"olga", "pete", "quinn"} {
		mustRegister(t, svc, name, "pw")
	}
	_, _ = svc.DeleteProfile(ctx, "pete")

	users, err := svc.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0].Username != "olga" || users[1].Username != "quinn" {
		t.Fatalf("unexpected users: %v", users)
	}
}

// ---- tokens ----

func TestMintToken(t *testing.T) {
	at := time.Unix(0, 42)
	nonce := []byte("0123456789abcdef")

	plain := mintToken(nil, "alice", at, nonce)
	if plain != "alice42" {
		t.Fatalf("fallback token = %q", plain)
	}

	hashed := mintToken(sha256.New, "alice", at, nonce)
	if len(hashed) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(hashed))
	}
	if hashed != mintToken(sha256.New, "alice", at, nonce) {
		t.Fatal("token must be deterministic for the same input")
	}
	if hashed == mintToken(sha256.New, "alice", at.Add(time.Nanosecond), nonce) {
		t.Fatal("token must change with the timestamp")
	}
	if hashed == mintToken(sha256.New, "alice", at, []byte("fedcba9876543210")) {
		t.Fatal("token must change with the nonce")
	}
	if a, b := newTokenNonce(), newTokenNonce(); string(a) == string(b) {
		t.Fatal("nonces must differ")
	}
}

func TestKeyLock_SameKeySameShard(t *testing.T) {
	l := newKeyLock(8)
	if l.shardIndex("abc") != l.shardIndex("abc") {
		t.Fatal("shard must be stable per key")
	}
	if len(newKeyLock(0).shards) != defaultLockShards {
		t.Fatal("non-positive shard count must fall back to the default")
	}

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("counter")
			counter++
			unlock()
		}()
	}
	wg.Wait()
	if counter != 100 {
		t.Fatalf("counter = %d", counter)
	}
}
