package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub/internal/kernel"
	"github.com/userhub/userhub/internal/requestctx"
	"github.com/userhub/userhub/internal/result"
	"github.com/userhub/userhub/internal/unitofwork"
	"github.com/userhub/userhub/internal/user/domain"
)

// mockUserRepository is a mock implementation of UserRepository for testing.
type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error) {
	args := m.Called(ctx, email, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// mockPasswordHasher is a mock implementation of PasswordHasher for testing.
type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Verify(plaintext, hash string) (bool, error) {
	args := m.Called(plaintext, hash)
	return args.Bool(0), args.Error(1)
}

// mockTokenProvider is a mock implementation of TokenProvider for testing.
type mockTokenProvider struct {
	mock.Mock
}

func (m *mockTokenProvider) Create(user UserModel) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

// fakeUnitOfWork records registrations and returns a canned save error.
// The factory returns the same instance so tests can inspect it afterwards.
type fakeUnitOfWork struct {
	added   []kernel.Aggregate
	dirty   []kernel.Aggregate
	removed []kernel.Aggregate
	saveErr error
	saved   bool
	saveCtx context.Context
}

func (f *fakeUnitOfWork) RegisterNew(aggregate kernel.Aggregate) {
	f.added = append(f.added, aggregate)
}

func (f *fakeUnitOfWork) RegisterDirty(aggregate kernel.Aggregate) {
	f.dirty = append(f.dirty, aggregate)
}

func (f *fakeUnitOfWork) RegisterRemoved(aggregate kernel.Aggregate) {
	f.removed = append(f.removed, aggregate)
}

func (f *fakeUnitOfWork) Save(ctx context.Context) error {
	f.saved = true
	f.saveCtx = ctx
	return f.saveErr
}

func fakeFactory(uow *fakeUnitOfWork) unitofwork.Factory {
	return unitofwork.FactoryFunc(func() unitofwork.UnitOfWork { return uow })
}

func newTestUseCase(
	repo *mockUserRepository,
	uow *fakeUnitOfWork,
	hasher *mockPasswordHasher,
	tokens *mockTokenProvider,
) *UserUseCase {
	return NewUserUseCase(repo, fakeFactory(uow), hasher, tokens, slog.New(slog.DiscardHandler))
}

func storedUser(t *testing.T, userName, email, passwordHash string) *domain.User {
	t.Helper()

	user := domain.NewUser(
		domain.NewUserName(userName).Value(),
		domain.NewEmail(email).Value(),
		"Stored User",
		passwordHash,
		uuid.Must(uuid.NewV7()),
	)
	user.PullEvents()
	return user
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	validInput := RegisterInput{
		UserName: "johndoe",
		Email:    "john@example.com",
		FullName: "John Doe",
		Password: "plaintext-password",
	}

	t.Run("Success_RegisterNewUser", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		mockHasher := &mockPasswordHasher{}
		uow := &fakeUnitOfWork{}

		mockRepo.On("GetByEmailOrUserName", ctx, "john@example.com", "johndoe").
			Return(nil, error(domain.ErrUserNotFound)).
			Once()
		mockHasher.On("Hash", "plaintext-password").
			Return("hashed-password", nil).
			Once()

		uc := newTestUseCase(mockRepo, uow, mockHasher, &mockTokenProvider{})
		r := uc.Register(ctx, validInput)

		require.True(t, r.IsSuccess())
		model := r.Value()
		assert.NotEqual(t, uuid.Nil, model.ID)
		assert.Equal(t, "johndoe", model.UserName)
		assert.Equal(t, "john@example.com", model.Email)
		assert.Equal(t, "John Doe", model.FullName)
		assert.False(t, model.IsDeleted)

		require.Len(t, uow.added, 1)
		assert.True(t, uow.saved)

		// The save runs with the new user as acting user.
		actor, err := requestctx.ActingUser(uow.saveCtx)
		require.NoError(t, err)
		assert.Equal(t, "johndoe", actor)

		mockRepo.AssertExpectations(t)
		mockHasher.AssertExpectations(t)
	})

	t.Run("Failure_InvalidEmailCheckedFirst", func(t *testing.T) {
		uow := &fakeUnitOfWork{}
		uc := newTestUseCase(&mockUserRepository{}, uow, &mockPasswordHasher{}, &mockTokenProvider{})

		// Both fields invalid: the email error wins.
		r := uc.Register(ctx, RegisterInput{UserName: "ab", Email: "no-separator", Password: "x"})

		require.True(t, r.IsFailure())
		assert.Equal(t, domain.ErrEmailInvalidFormat, r.Err())
		assert.False(t, uow.saved)
	})

	t.Run("Failure_InvalidUserName", func(t *testing.T) {
		uow := &fakeUnitOfWork{}
		uc := newTestUseCase(&mockUserRepository{}, uow, &mockPasswordHasher{}, &mockTokenProvider{})

		r := uc.Register(ctx, RegisterInput{UserName: "ab", Email: "john@example.com", Password: "x"})

		require.True(t, r.IsFailure())
		assert.Equal(t, domain.ErrUserNameTooShort, r.Err())
		assert.False(t, uow.saved)
	})

	t.Run("Failure_DuplicateFoundByPreCheck", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		uow := &fakeUnitOfWork{}

		existing := storedUser(t, "johndoe", "john@example.com", "hash")
		mockRepo.On("GetByEmailOrUserName", ctx, "john@example.com", "johndoe").
			Return(existing, nil).
			Once()

		uc := newTestUseCase(mockRepo, uow, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Register(ctx, validInput)

		require.True(t, r.IsFailure())
		assert.Equal(t, domain.ErrUserNameOrEmailAlreadyInUse, r.Err())
		assert.False(t, uow.saved)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure_DuplicateCaughtAtCommit", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		mockHasher := &mockPasswordHasher{}
		uow := &fakeUnitOfWork{saveErr: domain.ErrUserNameOrEmailAlreadyInUse}

		mockRepo.On("GetByEmailOrUserName", ctx, "john@example.com", "johndoe").
			Return(nil, error(domain.ErrUserNotFound)).
			Once()
		mockHasher.On("Hash", "plaintext-password").
			Return("hashed-password", nil).
			Once()

		uc := newTestUseCase(mockRepo, uow, mockHasher, &mockTokenProvider{})
		r := uc.Register(ctx, validInput)

		// The unique-index violation surfaces as the same typed conflict
		// error the pre-check uses.
		require.True(t, r.IsFailure())
		assert.Equal(t, domain.ErrUserNameOrEmailAlreadyInUse, r.Err())
	})

	t.Run("Failure_HasherError", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		mockHasher := &mockPasswordHasher{}
		uow := &fakeUnitOfWork{}

		mockRepo.On("GetByEmailOrUserName", ctx, "john@example.com", "johndoe").
			Return(nil, error(domain.ErrUserNotFound)).
			Once()
		mockHasher.On("Hash", "plaintext-password").
			Return("", errors.New("argon2 failure")).
			Once()

		uc := newTestUseCase(mockRepo, uow, mockHasher, &mockTokenProvider{})
		r := uc.Register(ctx, validInput)

		require.True(t, r.IsFailure())
		assert.Equal(t, result.TypeUnexpected, r.Err().Type)
		assert.False(t, uow.saved)
	})
}

func TestUserUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReturnsToken", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		mockHasher := &mockPasswordHasher{}
		mockTokens := &mockTokenProvider{}

		user := storedUser(t, "johndoe", "john@example.com", "stored-hash")
		mockRepo.On("GetByEmail", ctx, "john@example.com").
			Return(user, nil).
			Once()
		mockHasher.On("Verify", "correct-password", "stored-hash").
			Return(true, nil).
			Once()
		mockTokens.On("Create", mock.MatchedBy(func(m UserModel) bool {
			return m.ID == user.ID() && m.UserName == "johndoe" && m.Email == "john@example.com"
		})).
			Return("signed-token", nil).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, mockHasher, mockTokens)
		r := uc.Login(ctx, LoginInput{Email: "john@example.com", Password: "correct-password"})

		require.True(t, r.IsSuccess())
		assert.Equal(t, "signed-token", r.Value())
		mockRepo.AssertExpectations(t)
		mockHasher.AssertExpectations(t)
		mockTokens.AssertExpectations(t)
	})

	t.Run("Failure_InvalidEmailFormat", func(t *testing.T) {
		uc := newTestUseCase(&mockUserRepository{}, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})

		r := uc.Login(ctx, LoginInput{Email: "no-separator", Password: "x"})

		require.True(t, r.IsFailure())
		assert.Equal(t, domain.ErrEmailInvalidFormat, r.Err())
	})

	t.Run("Failure_UnknownEmail", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		mockRepo.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, error(domain.ErrUserNotFound)).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "x"})

		require.True(t, r.IsFailure())
		assert.Equal(t, domain.ErrUserNotFound, r.Err())
	})

	t.Run("Failure_WrongPasswordSameErrorAsUnknownEmail", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		mockHasher := &mockPasswordHasher{}

		user := storedUser(t, "johndoe", "john@example.com", "stored-hash")
		mockRepo.On("GetByEmail", ctx, "john@example.com").
			Return(user, nil).
			Once()
		mockHasher.On("Verify", "wrong-password", "stored-hash").
			Return(false, nil).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, mockHasher, &mockTokenProvider{})
		r := uc.Login(ctx, LoginInput{Email: "john@example.com", Password: "wrong-password"})

		// A wrong password is indistinguishable from an unknown email.
		require.True(t, r.IsFailure())
		assert.Equal(t, domain.ErrUserNotFound, r.Err())
	})

	t.Run("Failure_TokenProviderError", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		mockHasher := &mockPasswordHasher{}
		mockTokens := &mockTokenProvider{}

		user := storedUser(t, "johndoe", "john@example.com", "stored-hash")
		mockRepo.On("GetByEmail", ctx, "john@example.com").
			Return(user, nil).
			Once()
		mockHasher.On("Verify", "correct-password", "stored-hash").
			Return(true, nil).
			Once()
		mockTokens.On("Create", mock.Anything).
			Return("", errors.New("signing failure")).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, mockHasher, mockTokens)
		r := uc.Login(ctx, LoginInput{Email: "john@example.com", Password: "correct-password"})

		require.True(t, r.IsFailure())
		assert.Equal(t, result.TypeUnexpected, r.Err().Type)
	})
}

func TestUserUseCase_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ByID", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		user := storedUser(t, "johndoe", "john@example.com", "hash")
		id := user.ID()

		mockRepo.On("GetByID", ctx, id).
			Return(user, nil).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Query(ctx, QueryInput{ID: &id})

		require.True(t, r.IsSuccess())
		require.Len(t, r.Value(), 1)
		assert.Equal(t, id, r.Value()[0].ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_IDTakesPrecedenceOverOtherFilters", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		user := storedUser(t, "johndoe", "john@example.com", "hash")
		id := user.ID()

		mockRepo.On("GetByID", ctx, id).
			Return(user, nil).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Query(ctx, QueryInput{ID: &id, UserName: "someoneelse", Email: "other@example.com"})

		require.True(t, r.IsSuccess())
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_ByUserName", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		user := storedUser(t, "johndoe", "john@example.com", "hash")

		mockRepo.On("GetByUserName", ctx, "johndoe").
			Return(user, nil).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Query(ctx, QueryInput{UserName: "johndoe"})

		require.True(t, r.IsSuccess())
		require.Len(t, r.Value(), 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_ByEmail", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		user := storedUser(t, "johndoe", "john@example.com", "hash")

		mockRepo.On("GetByEmail", ctx, "john@example.com").
			Return(user, nil).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Query(ctx, QueryInput{Email: "john@example.com"})

		require.True(t, r.IsSuccess())
		require.Len(t, r.Value(), 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_NoMatchYieldsEmptyList", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		mockRepo.On("GetByUserName", ctx, "ghost").
			Return(nil, error(domain.ErrUserNotFound)).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Query(ctx, QueryInput{UserName: "ghost"})

		require.True(t, r.IsSuccess())
		assert.Empty(t, r.Value())
	})

	t.Run("Success_NoFilterListsAll", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		users := []*domain.User{
			storedUser(t, "johndoe", "john@example.com", "hash"),
			storedUser(t, "janedoe", "jane@example.com", "hash"),
		}
		mockRepo.On("List", ctx).
			Return(users, nil).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Query(ctx, QueryInput{})

		require.True(t, r.IsSuccess())
		require.Len(t, r.Value(), 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure_InvalidUserNameFilter", func(t *testing.T) {
		uc := newTestUseCase(&mockUserRepository{}, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})

		r := uc.Query(ctx, QueryInput{UserName: "ab"})

		require.True(t, r.IsFailure())
		assert.Equal(t, domain.ErrUserNameTooShort, r.Err())
	})

	t.Run("Failure_InvalidEmailFilter", func(t *testing.T) {
		uc := newTestUseCase(&mockUserRepository{}, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})

		r := uc.Query(ctx, QueryInput{Email: "no-separator"})

		require.True(t, r.IsFailure())
		assert.Equal(t, domain.ErrEmailInvalidFormat, r.Err())
	})

	t.Run("Failure_RepositoryError", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		mockRepo.On("List", ctx).
			Return(nil, errors.New("connection refused")).
			Once()

		uc := newTestUseCase(mockRepo, &fakeUnitOfWork{}, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Query(ctx, QueryInput{})

		require.True(t, r.IsFailure())
		assert.Equal(t, result.TypeUnexpected, r.Err().Type)
	})
}

func TestUserUseCase_Delete(t *testing.T) {
	ctx := requestctx.WithActingUser(context.Background(), "admin")

	t.Run("Success_SoftDeletesViaUnitOfWork", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		uow := &fakeUnitOfWork{}
		user := storedUser(t, "johndoe", "john@example.com", "hash")

		mockRepo.On("GetByID", ctx, user.ID()).
			Return(user, nil).
			Once()

		uc := newTestUseCase(mockRepo, uow, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Delete(ctx, user.ID())

		require.True(t, r.IsSuccess())
		require.Len(t, uow.removed, 1)
		assert.Same(t, user, uow.removed[0])
		assert.True(t, uow.saved)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure_UserNotFound", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		uow := &fakeUnitOfWork{}
		id := uuid.Must(uuid.NewV7())

		mockRepo.On("GetByID", ctx, id).
			Return(nil, error(domain.ErrUserNotFound)).
			Once()

		uc := newTestUseCase(mockRepo, uow, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Delete(ctx, id)

		require.True(t, r.IsFailure())
		assert.Equal(t, domain.ErrUserNotFound, r.Err())
		assert.False(t, uow.saved)
	})

	t.Run("Failure_SaveError", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		uow := &fakeUnitOfWork{saveErr: errors.New("commit failed")}
		user := storedUser(t, "johndoe", "john@example.com", "hash")

		mockRepo.On("GetByID", ctx, user.ID()).
			Return(user, nil).
			Once()

		uc := newTestUseCase(mockRepo, uow, &mockPasswordHasher{}, &mockTokenProvider{})
		r := uc.Delete(ctx, user.ID())

		require.True(t, r.IsFailure())
		assert.Equal(t, result.TypeUnexpected, r.Err().Type)
	})
}
