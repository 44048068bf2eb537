package mongo

import (
	"context"
	"time"

	"vikrithi/internal/domain/entity"
	domainerrors "vikrithi/internal/domain/errors"
	"vikrithi/internal/domain/repository"
	"vikrithi/internal/domain/service"
	"vikrithi/internal/infra/persistence/model"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// accountRepository implements the domain AccountRepository interface on top
// of the two per-kind collections. It composes the PasswordHasher into its
// write path: a staged plaintext credential is hashed right before the
// document reaches the store, so the workflow can never persist a plaintext
// by forgetting the call.
type accountRepository struct {
	db       *mongo.Database
	hasher   service.PasswordHasher
	validate *validator.Validate
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *mongo.Database, hasher service.PasswordHasher) repository.AccountRepository {
	return &accountRepository{
		db:       db,
		hasher:   hasher,
		validate: validator.New(),
	}
}

// FindByUsername retrieves the first account matching (kind, username).
// Usernames carry no uniqueness constraint, so "first match" is the contract.
func (repo *accountRepository) FindByUsername(ctx context.Context, kind entity.Kind, username string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.Collection(kind.Collection()).
		FindOne(ctx, bson.M{"username": username}).
		Decode(&accountM)

	if err != nil {
		// If no document matches, return the domain-specific sentinel.
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by username")
	}

	return toAccountDomain(kind, &accountM), nil
}

// Create validates and persists a new account entity.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if err := repo.hashPendingCredential(account); err != nil {
		return err
	}

	accountM := fromAccountDomain(account)
	if err := repo.validateModel(accountM); err != nil {
		return err
	}

	now := time.Now().UTC()
	accountM.CreatedAt = now
	accountM.UpdatedAt = now

	res, err := repo.db.Collection(account.Kind.Collection()).InsertOne(ctx, accountM)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Back-fill the generated ID and timestamps onto the entity.
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		account.ID = oid.Hex()
	}
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Save persists mutations to an existing account, replacing the stored
// document by ID. The replace carries no version check: two concurrent saves
// for the same account race and the last write wins.
func (repo *accountRepository) Save(ctx context.Context, account *entity.Account) error {
	if err := repo.hashPendingCredential(account); err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return errors.Wrap(err, "invalid account id")
	}

	accountM := fromAccountDomain(account)
	if err := repo.validateModel(accountM); err != nil {
		return err
	}

	accountM.ID = oid
	accountM.CreatedAt = account.CreatedAt
	accountM.UpdatedAt = time.Now().UTC()

	res, err := repo.db.Collection(account.Kind.Collection()).
		ReplaceOne(ctx, bson.M{"_id": oid}, accountM)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save account")
	}
	if res.MatchedCount == 0 {
		return repository.ErrAccountNotFound
	}

	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// hashPendingCredential is the write interceptor: when the credential field
// was modified since the last write, the staged plaintext is hashed and
// installed before persistence. An unmodified credential passes through
// untouched, so an already-hashed value is never hashed twice.
func (repo *accountRepository) hashPendingCredential(account *entity.Account) error {
	plain, ok := account.PendingPassword()
	if !ok {
		return nil
	}

	hash, err := repo.hasher.Hash(plain)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash pending credential")
	}

	account.SetPasswordHash(hash)

	return nil
}

// validateModel enforces the document invariants before a write: required
// fields present and the phone number exactly 10 digits.
func (repo *accountRepository) validateModel(accountM *model.AccountModel) error {
	err := repo.validate.Struct(accountM)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fieldErr := range fieldErrs {
			if fieldErr.Field() == "PhoneNumber" && fieldErr.Tag() != "required" {
				return domainerrors.ErrInvalidPhoneNumber
			}
		}

		return domainerrors.ErrValidationFailed.WithDetails(fieldErrs.Error())
	}

	return errors.Wrap(err, "failed to validate account model")
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a stored document to a domain Account entity.
// The kind is not stored in the document; it is implied by the collection.
func toAccountDomain(kind entity.Kind, data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID.Hex(),
		Kind:         kind,
		Username:     data.Username,
		CompanyName:  data.CompanyName,
		PhoneNumber:  data.PhoneNumber,
		PasswordHash: data.Password,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a persistence model.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		Username:    data.Username,
		CompanyName: data.CompanyName,
		PhoneNumber: data.PhoneNumber,
		Password:    data.PasswordHash,
	}
}
