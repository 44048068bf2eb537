package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"vikrithi/config"
	"vikrithi/internal/domain/entity"
	"vikrithi/internal/domain/repository"
	"vikrithi/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(enforceUnique bool) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:             10,
			EnforceUniqueUsernames: enforceUnique,
		},
	}

	return cfg
}

// memAccountRepository is an in-memory AccountRepository for the end-to-end
// credential scenario. It applies the same write interception as the Mongo
// implementation: a staged plaintext is hashed before the record is stored.
type memAccountRepository struct {
	mu     sync.Mutex
	hasher service.PasswordHasher
	nextID int
	byKind map[entity.Kind][]*entity.Account
}

func newMemAccountRepository(hasher service.PasswordHasher) *memAccountRepository {
	return &memAccountRepository{
		hasher: hasher,
		byKind: make(map[entity.Kind][]*entity.Account),
	}
}

func (repo *memAccountRepository) FindByUsername(_ context.Context, kind entity.Kind, username string) (*entity.Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, account := range repo.byKind[kind] {
		if account.Username == username {
			found := *account

			return &found, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (repo *memAccountRepository) Create(_ context.Context, account *entity.Account) error {
	if err := repo.intercept(account); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.nextID++
	account.ID = string(rune('a' + repo.nextID))
	stored := *account
	repo.byKind[account.Kind] = append(repo.byKind[account.Kind], &stored)

	return nil
}

func (repo *memAccountRepository) Save(_ context.Context, account *entity.Account) error {
	if err := repo.intercept(account); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i, stored := range repo.byKind[account.Kind] {
		if stored.ID == account.ID {
			updated := *account
			repo.byKind[account.Kind][i] = &updated

			return nil
		}
	}

	return repository.ErrAccountNotFound
}

func (repo *memAccountRepository) intercept(account *entity.Account) error {
	plain, ok := account.PendingPassword()
	if !ok {
		return nil
	}

	hash, err := repo.hasher.Hash(plain)
	if err != nil {
		return err
	}

	account.SetPasswordHash(hash)

	return nil
}
