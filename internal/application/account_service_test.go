package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/petit-bistro/service-reservation/internal/auth"
	"github.com/petit-bistro/service-reservation/internal/domain"
	clientDomain "github.com/petit-bistro/service-reservation/internal/domain/client"
)

type fakeClientRepo struct {
	byEmail map[string]*clientDomain.Client
	nextID  uint
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byEmail: make(map[string]*clientDomain.Client), nextID: 1}
}

func (r *fakeClientRepo) FindByEmail(ctx context.Context, email string) (*clientDomain.Client, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.NewNotFoundError("client", email)
	}
	return c, nil
}

func (r *fakeClientRepo) Save(ctx context.Context, c *clientDomain.Client) error {
	stored := clientDomain.Reconstruct(r.nextID, c.Email(), c.PasswordHash(), c.Name(), c.Phone(), c.IsActive())
	r.nextID++
	r.byEmail[c.Email()] = stored
	*c = *stored
	return nil
}

func (r *fakeClientRepo) Update(ctx context.Context, c *clientDomain.Client) error {
	if _, ok := r.byEmail[c.Email()]; !ok {
		return domain.NewNotFoundError("client", c.ID())
	}
	r.byEmail[c.Email()] = c
	return nil
}

func newAccountService() (*AccountService, *fakeClientRepo) {
	repo := newFakeClientRepo()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAccountService(repo, jwtManager, zap.NewNop()), repo
}

func signupReq(email, password string) SignupRequest {
	return SignupRequest{
		Email:          email,
		Password:       password,
		PasswordRepeat: password,
		Name:           "Test Guest",
	}
}

func TestSignup(t *testing.T) {
	svc, repo := newAccountService()

	token, err := svc.Signup(context.Background(), signupReq("guest@example.com", "s3cret-pass"))
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)

	stored, err := repo.FindByEmail(context.Background(), "guest@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsActive())
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash())
}

func TestSignup_Validation(t *testing.T) {
	svc, _ := newAccountService()

	// Too short.
	_, err := svc.Signup(context.Background(), signupReq("guest@example.com", "short"))
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))

	// Mismatched repeat.
	req := signupReq("guest@example.com", "s3cret-pass")
	req.PasswordRepeat = "different-pass"
	_, err = svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))

	// Duplicate email.
	_, err = svc.Signup(context.Background(), signupReq("guest@example.com", "s3cret-pass"))
	require.NoError(t, err)
	_, err = svc.Signup(context.Background(), signupReq("guest@example.com", "s3cret-pass"))
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))
}

func TestLoginLogout(t *testing.T) {
	svc, repo := newAccountService()

	_, err := svc.Signup(context.Background(), signupReq("guest@example.com", "s3cret-pass"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "guest@example.com"))
	stored, _ := repo.FindByEmail(context.Background(), "guest@example.com")
	assert.False(t, stored.IsActive())

	// A logged-out client cannot be resolved.
	_, err = svc.ResolveActive(context.Background(), "guest@example.com")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	// Wrong password.
	_, err = svc.Login(context.Background(), LoginRequest{Email: "guest@example.com", Password: "wrong-pass"})
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	// Correct password reactivates.
	token, err := svc.Login(context.Background(), LoginRequest{Email: "guest@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)

	resolved, err := svc.ResolveActive(context.Background(), "guest@example.com")
	require.NoError(t, err)
	assert.True(t, resolved.IsActive())
}

func TestResolveActive_UnknownClient(t *testing.T) {
	svc, _ := newAccountService()

	_, err := svc.ResolveActive(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}
