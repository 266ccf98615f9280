package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
)

const (
	defaultMaxAttempts     = 5
	defaultInitialInterval = 10 * time.Millisecond
)

var errCollision = errors.New("address already allocated")

// Config holds the allocator configuration
type Config struct {
	// MaxAttempts bounds the number of draws per allocation
	MaxAttempts int
	// InitialInterval is the first backoff delay after a collision
	InitialInterval time.Duration
	// ChainID is used to render account DIDs
	ChainID int64
}

// Onboarder creates accounts for identity provider subjects
//
//go:generate mockgen -source=allocator.go -destination=../mocks/onboarder.go -package=mocks -mock_names=Onboarder=MockOnboarder
type Onboarder interface {
	Onboard(ctx context.Context, subject string, role domain.Role) (*Account, error)
}

// Allocator hands out fresh account addresses and onboards accounts
type Allocator struct {
	store  store.Store
	random io.Reader
	cfg    Config
}

// NewAllocator creates an allocator drawing from random; nil means crypto/rand
func NewAllocator(cfg Config, st store.Store, random io.Reader) *Allocator {
	if random == nil {
		random = rand.Reader
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaultInitialInterval
	}
	return &Allocator{store: st, random: random, cfg: cfg}
}

// Draw produces one candidate address: "0x" followed by 40 lowercase hex characters
func (a *Allocator) Draw() (string, error) {
	buf := make([]byte, domain.ACCOUNT_ADDRESS_BYTES)
	if _, err := io.ReadFull(a.random, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return "0x" + hex.EncodeToString(buf), nil
}

// Allocate draws addresses until one is not yet allocated.
// Collisions are retried with exponential backoff up to MaxAttempts draws;
// exhausting the budget fails with an internal error.
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = a.cfg.InitialInterval
	bo.MaxElapsedTime = 0

	var address string
	attempts := 0
	operation := func() error {
		attempts++
		candidate, err := a.Draw()
		if err != nil {
			return backoff.Permanent(err)
		}

		exists, err := a.store.AccountAddressExists(ctx, candidate)
		if err != nil {
			return backoff.Permanent(err)
		}
		if exists {
			return errCollision
		}

		address = candidate
		return nil
	}

	notify := func(err error, d time.Duration) {
		logger.WarnCtx(ctx, "Account address collision, drawing again",
			zap.Int("attempt", attempts),
			zap.Duration("retryIn", d))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(a.cfg.MaxAttempts-1)), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if errors.Is(err, errCollision) {
			return "", domain.NewInternalError("allocate account address",
				fmt.Errorf("%w after %d attempts", domain.ErrAllocationExhausted, attempts))
		}
		return "", domain.NewInternalError("allocate account address", err)
	}

	return address, nil
}

// Account is an onboarded account
type Account struct {
	ID      string      `json:"id"`
	Subject string      `json:"subject"`
	Address string      `json:"address"`
	Role    domain.Role `json:"role"`
	DID     domain.DID  `json:"did"`
}

// Onboard allocates an address and creates the account for subject.
// Onboarding an existing subject is a conflict.
func (a *Allocator) Onboard(ctx context.Context, subject string, role domain.Role) (*Account, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, domain.NewValidationError("subject is required")
	}
	if !domain.IsValidRole(role) {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}

	existing, err := a.store.GetAccountBySubject(ctx, subject)
	if err != nil {
		return nil, domain.NewInternalError("lookup account", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError(domain.CodeAlreadyInUse, fmt.Errorf("subject %s already onboarded", subject))
	}

	address, err := a.Allocate(ctx)
	if err != nil {
		return nil, err
	}

	account, err := a.store.CreateAccount(ctx, store.CreateAccountInput{
		Subject: subject,
		Address: address,
		Role:    role,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, domain.NewConflictError(domain.CodeAlreadyInUse, err)
		}
		return nil, domain.NewInternalError("create account", err)
	}

	logger.InfoCtx(ctx, "Account onboarded",
		zap.String("accountID", account.ID),
		zap.String("role", string(role)))

	return &Account{
		ID:      account.ID,
		Subject: account.Subject,
		Address: account.Address,
		Role:    account.Role,
		DID:     domain.NewAccountDID(account.Address, a.cfg.ChainID),
	}, nil
}
