package lifecycle

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/feral-file/ff-lifecycle-bridge/internal/adapter"
	"github.com/feral-file/ff-lifecycle-bridge/internal/auth"
	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/messaging"
	"github.com/feral-file/ff-lifecycle-bridge/internal/metrics"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
)

const (
	defaultPageLimit       = 20
	defaultChunkSize       = 50
	defaultListConcurrency = 4
)

// Config holds the orchestrator configuration
type Config struct {
	// ChunkSize is the number of ids fetched per ledger array getter call
	ChunkSize int
	// ListConcurrency bounds the concurrent ledger reads of a list query
	ListConcurrency int
}

// Service coordinates lifecycle operations across the ledger and the ownership index
//
//go:generate mockgen -source=service.go -destination=../mocks/lifecycle.go -package=mocks -mock_names=Service=MockLifecycleService
type Service interface {
	// CreateRawBatch registers a raw batch owned by the producer
	CreateRawBatch(ctx context.Context, credential string, input CreateRawBatchInput) (*Created, error)
	// SellRawBatch sells part of a raw batch, creating a sold batch owned by the buyer
	SellRawBatch(ctx context.Context, credential string, input SellRawBatchInput) (*Created, error)
	// CreateProductBatch makes a product batch from a sold batch
	CreateProductBatch(ctx context.Context, credential string, input CreateProductBatchInput) (*Created, error)
	// CreateWasteItem registers a waste item watched by its depositor
	CreateWasteItem(ctx context.Context, credential string, input CreateWasteItemInput) (*Created, error)
	// RecycleWasteItems consumes waste items into a recycled batch
	RecycleWasteItems(ctx context.Context, credential string, input RecycleWasteItemsInput) (*Created, error)
	// Delete soft-deletes an entity on the ledger and removes its index rows
	Delete(ctx context.Context, credential string, stage domain.Stage, id uint64) error
	// ListOwned lists the entities of a stage owned by the caller
	ListOwned(ctx context.Context, credential string, stage domain.Stage, page Page) ([]Owned, error)
	// ListWatched lists the entities watched by the caller
	ListWatched(ctx context.Context, credential string, page Page) ([]Watched, error)
	// Unwatch removes one of the caller's watches
	Unwatch(ctx context.Context, credential string, watchID string) error
}

type service struct {
	cfg        Config
	ledger     ledger.Client
	store      store.Store
	verifier   auth.Verifier
	authorizer auth.Authorizer
	publisher  messaging.Publisher
	clock      adapter.Clock
	metrics    *metrics.Metrics
	validate   *validator.Validate
}

// NewService creates the lifecycle orchestrator
func NewService(
	cfg Config,
	ledgerClient ledger.Client,
	st store.Store,
	verifier auth.Verifier,
	authorizer auth.Authorizer,
	publisher messaging.Publisher,
	clock adapter.Clock,
	m *metrics.Metrics,
) Service {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.ListConcurrency <= 0 {
		cfg.ListConcurrency = defaultListConcurrency
	}
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}

	return &service{
		cfg:        cfg,
		ledger:     ledgerClient,
		store:      st,
		verifier:   verifier,
		authorizer: authorizer,
		publisher:  publisher,
		clock:      clock,
		metrics:    m,
		validate:   newValidator(),
	}
}

// authenticate verifies the credential, authorizes (stage, action) and
// resolves the caller's ledger address
func (s *service) authenticate(ctx context.Context, credential string, stage domain.Stage, action domain.Action) (*domain.Actor, error) {
	principal, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.Authorize(*principal, stage, action); err != nil {
		return nil, err
	}

	account, err := s.store.GetAccountByID(ctx, principal.AccountID)
	if err != nil {
		return nil, domain.NewInternalError("lookup account", err)
	}
	if account == nil {
		return nil, domain.NewUnauthenticatedError(domain.CodeUnknownAccount,
			fmt.Errorf("account %s is not onboarded", principal.AccountID))
	}
	// the account was onboarded for one role; a token claiming another is rejected
	if account.Role != principal.Role {
		return nil, domain.NewForbiddenError(domain.CodeRoleMismatch)
	}

	return &domain.Actor{
		Principal: *principal,
		Address:   common.HexToAddress(account.Address),
	}, nil
}

// resolveAccount returns the ledger address of a counterparty account
func (s *service) resolveAccount(ctx context.Context, accountID string) (common.Address, error) {
	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		return common.Address{}, domain.NewInternalError("lookup account", err)
	}
	if account == nil {
		return common.Address{}, domain.NewNotFoundError(domain.CodeUnknownAccount)
	}
	return common.HexToAddress(account.Address), nil
}

func normalizePage(p Page) Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
