package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

// PasswordVerifier is a one-way hash comparison. A mismatch is
// (false, nil); an error means the comparison itself could not be made.
type PasswordVerifier interface {
	Verify(plain, hash string) (bool, error)
}

type AdmissionPolicy struct {
	Window types.Window

	// DecoyHash is verified against when the login is unknown so that an
	// unknown login costs the same as a wrong password. Optional.
	DecoyHash string
}

// Admission is the result of one Admit call. Account is set only for the
// two accepted decisions.
type Admission struct {
	Decision types.Decision
	Account  store.Account
	At       time.Time
}

// Gate decides whether a login is accepted and, for standard accounts,
// whether it counts as today's check-in.
type Gate struct {
	accounts store.AccountStore
	verifier PasswordVerifier
	ledger   store.Ledger
	clock    Clock
	policy   AdmissionPolicy
	locks    *keyLocker
	logger   *zap.Logger
}

func NewGate(
	accounts store.AccountStore,
	verifier PasswordVerifier,
	ledger store.Ledger,
	clock Clock,
	policy AdmissionPolicy,
	logger *zap.Logger,
) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		accounts: accounts,
		verifier: verifier,
		ledger:   ledger,
		clock:    clock,
		policy:   policy,
		locks:    newKeyLocker(),
		logger:   logger,
	}
}

func (g *Gate) Window() types.Window { return g.policy.Window }

// Admit runs one login attempt to a terminal decision. A non-nil error is
// an infrastructure failure; the returned Admission is then the zero value
// and must not be read as any decision.
func (g *Gate) Admit(ctx context.Context, login, password string) (Admission, error) {
	now := g.clock.Now()
	login = types.NormalizeLogin(login)

	acc, ok, err := g.authenticate(ctx, login, strings.TrimSpace(password))
	if err != nil {
		return Admission{}, err
	}
	if !ok {
		return g.decide(login, types.DecisionRejectedBadCredentials, store.Account{}, now), nil
	}

	if acc.Role == types.RolePrivileged {
		return g.decide(login, types.DecisionAcceptedPrivileged, acc, now), nil
	}

	tod := types.TimeOfDayOf(now)
	if !g.policy.Window.Contains(tod) {
		return g.decide(login, types.DecisionRejectedOutOfWindow, store.Account{}, now), nil
	}

	d, err := g.checkIn(ctx, acc, types.DayOf(now), tod, now)
	if err != nil {
		return Admission{}, err
	}
	if !d.Accepted() {
		acc = store.Account{}
	}
	return g.decide(login, d, acc, now), nil
}

// authenticate merges "no such login" and "wrong password" into one
// (false, nil) outcome.
func (g *Gate) authenticate(ctx context.Context, login, password string) (store.Account, bool, error) {
	acc, err := g.accounts.FindByLogin(ctx, login)
	if errors.Is(err, store.ErrNotFound) {
		if g.policy.DecoyHash != "" {
			_, _ = g.verifier.Verify(password, g.policy.DecoyHash)
		}
		return store.Account{}, false, nil
	}
	if err != nil {
		return store.Account{}, false, fmt.Errorf("lookup account: %w", err)
	}

	match, err := g.verifier.Verify(password, acc.PasswordHash)
	if err != nil {
		return store.Account{}, false, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return store.Account{}, false, nil
	}
	return acc, true, nil
}

// checkIn serializes the dedup query and the append per (account, day).
// The ledger's own uniqueness check backs this up across processes.
func (g *Gate) checkIn(ctx context.Context, acc store.Account, day string, tod types.TimeOfDay, now time.Time) (types.Decision, error) {
	unlock := g.locks.Lock(strconv.FormatInt(acc.ID, 10) + "|" + day)
	defer unlock()

	exists, err := g.ledger.ExistsInWindow(ctx, acc.ID, day, g.policy.Window)
	if err != nil {
		return "", fmt.Errorf("check ledger: %w", err)
	}
	if exists {
		return types.DecisionRejectedAlreadyCheckedIn, nil
	}

	err = g.ledger.Append(ctx, store.CheckInRecord{
		AccountID:  acc.ID,
		Name:       acc.Name,
		Day:        day,
		Time:       tod,
		InWindow:   true,
		RecordedAt: now.UTC(),
	})
	if errors.Is(err, store.ErrDuplicateCheckIn) {
		return types.DecisionRejectedAlreadyCheckedIn, nil
	}
	if err != nil {
		return "", fmt.Errorf("append check-in: %w", err)
	}
	return types.DecisionAcceptedCheckedIn, nil
}

func (g *Gate) decide(login string, d types.Decision, acc store.Account, now time.Time) Admission {
	g.logger.Info("admission decided",
		zap.String("login", login),
		zap.String("decision", string(d)),
		zap.Time("at", now),
	)
	return Admission{Decision: d, Account: acc, At: now}
}
