package impl

import (
	"context"
	"testing"

	"vikrithi/internal/domain/entity"
	domainerrors "vikrithi/internal/domain/errors"
	"vikrithi/internal/domain/repository"
	mockRepo "vikrithi/internal/mocks/repository"
	mockSvc "vikrithi/internal/mocks/service"
	"vikrithi/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service  usecase.AuthUsecase
	accounts *mockRepo.MockAccountRepository
	hasher   *mockSvc.MockPasswordHasher
}

func createTestAuthService(t *testing.T, enforceUnique bool) authServiceFixtures {
	accounts := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewAuthService(accounts, hasher, newTestConfig(enforceUnique), newDiscardLogger())

	return authServiceFixtures{
		service:  service,
		accounts: accounts,
		hasher:   hasher,
	}
}

func TestAuthService_Signup_DonorSuccess(t *testing.T) {
	fx := createTestAuthService(t, false)

	ctx := context.Background()
	input := &usecase.SignupInput{
		Username:    "alice",
		PhoneNumber: "1234567890",
		Password:    "pw1",
		UserType:    "donor",
	}

	fx.accounts.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			// The store's write interceptor consumes the staged plaintext.
			plain, ok := account.PendingPassword()
			assert.True(t, ok)
			assert.Equal(t, "pw1", plain)

			account.SetPasswordHash("hashed_pw1")
			account.ID = "64f000000000000000000001"
		}).
		Return(nil)

	output, err := fx.service.Signup(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, entity.KindDonor, output.Account.Kind)
	assert.Equal(t, "alice", output.Account.Username)
	assert.Equal(t, "1234567890", output.Account.PhoneNumber)
	assert.Empty(t, output.Account.CompanyName)
	assert.NotEqual(t, "pw1", output.Account.PasswordHash)
}

func TestAuthService_Signup_MissingFields(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	tests := []struct {
		name  string
		input *usecase.SignupInput
	}{
		{name: "no username", input: &usecase.SignupInput{PhoneNumber: "1234567890", Password: "pw", UserType: "donor"}},
		{name: "no phone", input: &usecase.SignupInput{Username: "alice", Password: "pw", UserType: "donor"}},
		{name: "no password", input: &usecase.SignupInput{Username: "alice", PhoneNumber: "1234567890", UserType: "donor"}},
		{name: "no user type", input: &usecase.SignupInput{Username: "alice", PhoneNumber: "1234567890", Password: "pw"}},
		{name: "blank username", input: &usecase.SignupInput{Username: "   ", PhoneNumber: "1234567890", Password: "pw", UserType: "donor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := fx.service.Signup(ctx, tt.input)
			assert.Nil(t, output)
			assert.ErrorIs(t, err, domainerrors.ErrMissingFields)
		})
	}
}

func TestAuthService_Signup_UnknownUserType(t *testing.T) {
	fx := createTestAuthService(t, false)

	output, err := fx.service.Signup(context.Background(), &usecase.SignupInput{
		Username:    "alice",
		PhoneNumber: "1234567890",
		Password:    "pw1",
		UserType:    "admin",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUnknownUserType)
}

func TestAuthService_Signup_RecyclerRequiresCompanyName(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	output, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Username:    "greenco",
		PhoneNumber: "1234567890",
		Password:    "pw1",
		UserType:    "recycler",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCompanyNameRequired)
}

func TestAuthService_Signup_RecyclerSuccess(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	fx.accounts.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			account.SetPasswordHash("hashed_pw1")
		}).
		Return(nil)

	output, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Username:    "greenco",
		PhoneNumber: "1234567890",
		Password:    "pw1",
		UserType:    "recycler",
		CompanyName: "Green Co",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.KindRecycler, output.Account.Kind)
	assert.Equal(t, "Green Co", output.Account.CompanyName)
}

func TestAuthService_Signup_ValidationErrorPassthrough(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	fx.accounts.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Return(domainerrors.ErrInvalidPhoneNumber)

	output, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Username:    "alice",
		PhoneNumber: "12345",
		Password:    "pw1",
		UserType:    "donor",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPhoneNumber)
}

func TestAuthService_Signup_EnforceUniqueUsernames(t *testing.T) {
	fx := createTestAuthService(t, true)
	ctx := context.Background()

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindDonor, "alice").
		Return(&entity.Account{Kind: entity.KindDonor, Username: "alice"}, nil)

	output, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Username:    "alice",
		PhoneNumber: "1234567890",
		Password:    "pw1",
		UserType:    "donor",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAuthService_Signup_EnforceUniqueUsernames_Available(t *testing.T) {
	fx := createTestAuthService(t, true)
	ctx := context.Background()

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindDonor, "alice").
		Return(nil, repository.ErrAccountNotFound)
	fx.accounts.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			account.SetPasswordHash("hashed_pw1")
		}).
		Return(nil)

	output, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Username:    "alice",
		PhoneNumber: "1234567890",
		Password:    "pw1",
		UserType:    "donor",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", output.Account.Username)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	stored := &entity.Account{
		Kind:         entity.KindDonor,
		Username:     "alice",
		PasswordHash: "hashed_pw1",
	}

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindDonor, "alice").
		Return(stored, nil)
	fx.hasher.EXPECT().Check("pw1", "hashed_pw1").Return(true)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Name:     "alice",
		Password: "pw1",
		UserType: "donor",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", output.Account.Username)
}

func TestAuthService_Login_IncorrectPassword(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	stored := &entity.Account{
		Kind:         entity.KindDonor,
		Username:     "alice",
		PasswordHash: "hashed_pw1",
	}

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindDonor, "alice").
		Return(stored, nil)
	fx.hasher.EXPECT().Check("wrong", "hashed_pw1").Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Name:     "alice",
		Password: "wrong",
		UserType: "donor",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrIncorrectPassword)
}

func TestAuthService_Login_AccountNotFound(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindRecycler, "ghost").
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Name:     "ghost",
		Password: "pw1",
		UserType: "recycler",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	fx := createTestAuthService(t, false)

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{Name: "alice"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrMissingFields)
}

func TestAuthService_Login_UnknownUserType(t *testing.T) {
	fx := createTestAuthService(t, false)

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Name:     "alice",
		Password: "pw1",
		UserType: "receiver",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUnknownUserType)
}

func TestAuthService_Login_StorageFailure(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindDonor, "alice").
		Return(nil, assert.AnError)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Name:     "alice",
		Password: "pw1",
		UserType: "donor",
	})

	assert.Nil(t, output)
	require.Error(t, err)
	// An unexpected storage failure is not translated into a user-facing
	// account error; it surfaces as a generic server error at the boundary.
	assert.NotErrorIs(t, err, domainerrors.ErrAccountNotFound)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAuthService_ForgotPassword_Success(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	stored := &entity.Account{Kind: entity.KindRecycler, Username: "greenco"}

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindRecycler, "greenco").
		Return(stored, nil)

	output, err := fx.service.ForgotPassword(ctx, &usecase.ForgotPasswordInput{
		Name:     "greenco",
		UserType: "recycler",
	})

	require.NoError(t, err)
	assert.Equal(t, "greenco", output.Name)
	assert.Equal(t, entity.KindRecycler, output.Kind)
}

func TestAuthService_ForgotPassword_NotFound(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindDonor, "ghost").
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.ForgotPassword(ctx, &usecase.ForgotPasswordInput{
		Name:     "ghost",
		UserType: "donor",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAuthService_ForgotPassword_MissingFields(t *testing.T) {
	fx := createTestAuthService(t, false)

	output, err := fx.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{UserType: "donor"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrMissingFields)
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	stored := &entity.Account{
		ID:           "64f000000000000000000001",
		Kind:         entity.KindDonor,
		Username:     "alice",
		PasswordHash: "hashed_pw1",
	}

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindDonor, "alice").
		Return(stored, nil)
	fx.accounts.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			// The replacement credential is staged for the write interceptor.
			plain, ok := account.PendingPassword()
			assert.True(t, ok)
			assert.Equal(t, "pw2", plain)
		}).
		Return(nil)

	err := fx.service.ResetPassword(ctx, &usecase.ResetPasswordInput{
		Name:        "alice",
		NewPassword: "pw2",
		UserType:    "donor",
	})

	assert.NoError(t, err)
}

func TestAuthService_ResetPassword_NotFound(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindDonor, "ghost").
		Return(nil, repository.ErrAccountNotFound)

	err := fx.service.ResetPassword(ctx, &usecase.ResetPasswordInput{
		Name:        "ghost",
		NewPassword: "pw2",
		UserType:    "donor",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAuthService_ResetPassword_MissingFields(t *testing.T) {
	fx := createTestAuthService(t, false)

	err := fx.service.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
		Name:     "alice",
		UserType: "donor",
	})

	assert.ErrorIs(t, err, domainerrors.ErrMissingFields)
}

func TestAuthService_ResetPassword_SaveFailure(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	stored := &entity.Account{
		ID:       "64f000000000000000000001",
		Kind:     entity.KindDonor,
		Username: "alice",
	}

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindDonor, "alice").
		Return(stored, nil)
	fx.accounts.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Account")).
		Return(assert.AnError)

	err := fx.service.ResetPassword(ctx, &usecase.ResetPasswordInput{
		Name:        "alice",
		NewPassword: "pw2",
		UserType:    "donor",
	})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestAuthService_ResetPassword_GoneBetweenResolveAndSave(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	stored := &entity.Account{
		ID:       "64f000000000000000000001",
		Kind:     entity.KindDonor,
		Username: "alice",
	}

	fx.accounts.EXPECT().
		FindByUsername(ctx, entity.KindDonor, "alice").
		Return(stored, nil)
	fx.accounts.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Account")).
		Return(repository.ErrAccountNotFound)

	err := fx.service.ResetPassword(ctx, &usecase.ResetPasswordInput{
		Name:        "alice",
		NewPassword: "pw2",
		UserType:    "donor",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}
