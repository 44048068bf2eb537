package mongo

import (
	"testing"

	"vikrithi/internal/domain/entity"
	domainerrors "vikrithi/internal/domain/errors"
	"vikrithi/internal/infra/persistence/model"
	mockSvc "vikrithi/internal/mocks/service"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRepository(t *testing.T) (*accountRepository, *mockSvc.MockPasswordHasher) {
	hasher := mockSvc.NewMockPasswordHasher(t)
	repo := &accountRepository{
		hasher:   hasher,
		validate: validator.New(),
	}

	return repo, hasher
}

func TestAccountRepository_HashPendingCredential(t *testing.T) {
	repo, hasher := newTestRepository(t)

	account := &entity.Account{Kind: entity.KindDonor, Username: "alice"}
	account.SetPassword("pw1")

	hasher.EXPECT().Hash("pw1").Return("hashed_pw1", nil)

	require.NoError(t, repo.hashPendingCredential(account))
	assert.Equal(t, "hashed_pw1", account.PasswordHash)

	// The staged plaintext is consumed; a second write must not rehash.
	_, ok := account.PendingPassword()
	assert.False(t, ok)
}

func TestAccountRepository_HashPendingCredential_SkipsUnmodified(t *testing.T) {
	repo, _ := newTestRepository(t)

	// No Hash expectation: hashing an already-hashed credential on an
	// unrelated update would double-hash it.
	account := &entity.Account{Kind: entity.KindDonor, Username: "alice"}
	account.SetPasswordHash("existing_hash")
	account.PhoneNumber = "0987654321"

	require.NoError(t, repo.hashPendingCredential(account))
	assert.Equal(t, "existing_hash", account.PasswordHash)
}

func TestAccountRepository_HashPendingCredential_HashError(t *testing.T) {
	repo, hasher := newTestRepository(t)

	account := &entity.Account{Kind: entity.KindDonor, Username: "alice"}
	account.SetPassword("pw1")

	hasher.EXPECT().Hash("pw1").Return("", assert.AnError)

	err := repo.hashPendingCredential(account)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestAccountRepository_ValidateModel_PhoneNumber(t *testing.T) {
	repo, _ := newTestRepository(t)

	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{name: "valid 10 digits", phone: "1234567890", valid: true},
		{name: "too short", phone: "12345", valid: false},
		{name: "too long", phone: "12345678901", valid: false},
		{name: "letters", phone: "abcdefghij", valid: false},
		{name: "mixed", phone: "12345abcde", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountM := &model.AccountModel{
				Username:    "alice",
				PhoneNumber: tt.phone,
				Password:    "hashed",
			}

			err := repo.validateModel(accountM)
			if tt.valid {
				assert.NoError(t, err)

				return
			}
			assert.ErrorIs(t, err, domainerrors.ErrInvalidPhoneNumber)
		})
	}
}

func TestAccountRepository_ValidateModel_RequiredFields(t *testing.T) {
	repo, _ := newTestRepository(t)

	err := repo.validateModel(&model.AccountModel{PhoneNumber: "1234567890"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountMapping_RoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	accountM := &model.AccountModel{
		ID:          oid,
		Username:    "greenco",
		CompanyName: "Green Co",
		PhoneNumber: "1234567890",
		Password:    "hashed",
	}

	account := toAccountDomain(entity.KindRecycler, accountM)
	require.NotNil(t, account)
	assert.Equal(t, oid.Hex(), account.ID)
	assert.Equal(t, entity.KindRecycler, account.Kind)
	assert.Equal(t, "greenco", account.Username)
	assert.Equal(t, "Green Co", account.CompanyName)
	assert.Equal(t, "hashed", account.PasswordHash)

	back := fromAccountDomain(account)
	require.NotNil(t, back)
	assert.Equal(t, accountM.Username, back.Username)
	assert.Equal(t, accountM.CompanyName, back.CompanyName)
	assert.Equal(t, accountM.PhoneNumber, back.PhoneNumber)
	assert.Equal(t, accountM.Password, back.Password)
}
