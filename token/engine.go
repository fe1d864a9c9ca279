package token

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/access"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/common"
	"github.com/houssamboudiar/mockusdt-tron/fee"
	"github.com/houssamboudiar/mockusdt-tron/ledger"
	"github.com/houssamboudiar/mockusdt-tron/storage"
	"go.uber.org/zap"
)

const (
	// Decimals is the number of fractional digits of token amounts.
	Decimals = 6

	// DefaultName is the token name used when Prm.Name is empty.
	DefaultName = "Tether USD"
	// DefaultSymbol is the token symbol used when Prm.Symbol is empty.
	DefaultSymbol = "USDT"

	// DefaultInitialSupply is the amount issued to the owner on token creation
	// when Prm.InitialSupply is nil: 1 billion tokens.
	DefaultInitialSupply = 1_000_000_000 * 1_000_000
)

// Store persists token state, see storage.LevelDB.
type Store interface {
	// Load returns stored state or storage.ErrEmpty if nothing is stored.
	Load() (*storage.State, error)
	// Save replaces stored state.
	Save(*storage.State) error
	// Apply atomically writes changes of a single operation.
	Apply(*storage.ChangeSet) error
}

// Prm groups Engine parameters.
type Prm struct {
	// Writes operations into the log. Optional.
	Logger *zap.Logger

	// Persistent storage of the token state. Optional: without a Store
	// the token lives in memory only.
	Store Store

	// Operation collectors. Optional.
	Metrics *Metrics

	// Callback receiving every applied Event. It is called under the Engine
	// lock and must not call Engine methods. Optional.
	OnEvent func(Event)

	// Name and symbol of a new token. Defaults are DefaultName and
	// DefaultSymbol.
	Name   string
	Symbol string

	// Owner of a new token. It receives the initial supply.
	Owner address.Address

	// Amount issued to the Owner of a new token, DefaultInitialSupply if nil.
	InitialSupply *uint256.Int
}

// Engine is the token ledger.
type Engine struct {
	log     *zap.Logger
	store   Store
	metrics *Metrics
	onEvent func(Event)

	mu sync.RWMutex

	name   string
	symbol string
	height uint64

	access     *access.Control
	fees       *fee.Policy
	ledger     *ledger.Ledger
	allowances *ledger.Allowances
}

// New returns Engine for the token described by prm. If the Store holds a
// token already, it is loaded and the token parameters of prm are ignored.
// Otherwise a new token is created: the initial supply is issued to the
// Owner, the token is not paused, nobody is blacklisted and there is no
// transfer fee.
func New(prm Prm) (*Engine, error) {
	if prm.Store != nil {
		st, err := prm.Store.Load()
		switch {
		case err == nil:
			e, err := newEngine(prm, st)
			if err != nil {
				return nil, fmt.Errorf("restore stored token: %w", err)
			}

			e.log.Info("token state loaded",
				zap.String("symbol", e.symbol),
				zap.Uint64("height", e.height),
				zap.Stringer("owner", e.access.Owner()))

			return e, nil
		case !errors.Is(err, storage.ErrEmpty):
			return nil, fmt.Errorf("load token state: %w", err)
		}
	}

	st, err := genesis(prm)
	if err != nil {
		return nil, err
	}

	e, err := newEngine(prm, st)
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if err = e.store.Save(st); err != nil {
			return nil, fmt.Errorf("save new token: %w", err)
		}
	}

	e.log.Info("token created",
		zap.String("name", e.name),
		zap.String("symbol", e.symbol),
		zap.Stringer("owner", st.Owner),
		zap.String("supply", st.TotalSupply.Dec()))

	return e, nil
}

// Restore returns Engine with the given state, e.g. read from a dump. If
// prm.Store is set, the state replaces everything stored there. Token
// parameters of prm are ignored.
func Restore(prm Prm, st *storage.State) (*Engine, error) {
	e, err := newEngine(prm, st)
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if err = e.store.Save(st); err != nil {
			return nil, fmt.Errorf("save restored token: %w", err)
		}
	}

	e.log.Info("token state restored",
		zap.String("symbol", e.symbol),
		zap.Uint64("height", e.height))

	return e, nil
}

func genesis(prm Prm) (*storage.State, error) {
	if err := prm.Owner.Valid(); err != nil {
		return nil, fmt.Errorf("token owner: %w", err)
	}

	st := &storage.State{
		Name:     prm.Name,
		Symbol:   prm.Symbol,
		Decimals: Decimals,
		Owner:    prm.Owner,
	}

	if st.Name == "" {
		st.Name = DefaultName
	}
	if st.Symbol == "" {
		st.Symbol = DefaultSymbol
	}

	if prm.InitialSupply != nil {
		st.TotalSupply = *prm.InitialSupply
	} else {
		st.TotalSupply.SetUint64(DefaultInitialSupply)
	}

	if !st.TotalSupply.IsZero() {
		st.Balances = []ledger.Balance{{Account: prm.Owner, Amount: st.TotalSupply}}
	}

	return st, nil
}

func newEngine(prm Prm, st *storage.State) (*Engine, error) {
	if st.Decimals != Decimals {
		return nil, fmt.Errorf("%w: token has %d decimals, expected %d", common.ErrInvalidArgument, st.Decimals, Decimals)
	}

	ac, err := access.Restore(st.Owner, st.Paused, st.Blacklist)
	if err != nil {
		return nil, fmt.Errorf("access control: %w", err)
	}

	fees, err := fee.New(st.FeeRate, st.FeeRecipient)
	if err != nil {
		return nil, fmt.Errorf("fee policy: %w", err)
	}

	l, err := ledger.Restore(st.Balances, &st.TotalSupply)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}

	allowances, err := ledger.RestoreAllowances(st.Allowances)
	if err != nil {
		return nil, fmt.Errorf("allowances: %w", err)
	}

	e := &Engine{
		log:        prm.Logger,
		store:      prm.Store,
		metrics:    prm.Metrics,
		onEvent:    prm.OnEvent,
		name:       st.Name,
		symbol:     st.Symbol,
		height:     st.Height,
		access:     ac,
		fees:       fees,
		ledger:     l,
		allowances: allowances,
	}

	if e.log == nil {
		e.log = zap.NewNop()
	}

	e.metrics.setHeight(e.height)

	return e, nil
}

// Name returns token name.
func (e *Engine) Name() string {
	return e.name
}

// Symbol returns token ticker symbol.
func (e *Engine) Symbol() string {
	return e.symbol
}

// Decimals returns the number of fractional digits of token amounts.
func (e *Engine) Decimals() uint8 {
	return Decimals
}

// TotalSupply returns the amount of all existing assets.
func (e *Engine) TotalSupply() *uint256.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.TotalSupply()
}

// BalanceOf returns balance of the account.
func (e *Engine) BalanceOf(a address.Address) *uint256.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.BalanceOf(a)
}

// Allowance returns the amount spender may transfer from owner.
func (e *Engine) Allowance(owner, spender address.Address) *uint256.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.allowances.AllowanceOf(owner, spender)
}

// Owner returns current token owner.
func (e *Engine) Owner() address.Address {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.access.Owner()
}

// Paused checks whether transfers are paused.
func (e *Engine) Paused() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.access.Paused()
}

// IsBlacklisted checks whether the account is blacklisted.
func (e *Engine) IsBlacklisted(a address.Address) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.access.IsBlacklisted(a)
}

// TransferFee returns fee rate in basis points and the fee recipient.
func (e *Engine) TransferFee() (uint16, address.Address) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fees.Rate(), e.fees.Recipient()
}

// Height returns the number of applied operations.
func (e *Engine) Height() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.height
}

// Snapshot returns the whole current state of the token.
func (e *Engine) Snapshot() *storage.State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := &storage.State{
		Name:         e.name,
		Symbol:       e.symbol,
		Decimals:     Decimals,
		Height:       e.height,
		Owner:        e.access.Owner(),
		Paused:       e.access.Paused(),
		FeeRate:      e.fees.Rate(),
		FeeRecipient: e.fees.Recipient(),
		TotalSupply:  *e.ledger.TotalSupply(),
		Balances:     e.ledger.Balances(),
		Allowances:   e.allowances.All(),
	}

	if bl := e.access.Blacklist(); len(bl) > 0 {
		st.Blacklist = bl
	}
	if len(st.Balances) == 0 {
		st.Balances = nil
	}
	if len(st.Allowances) == 0 {
		st.Allowances = nil
	}

	return st
}

// change is a validated operation which is not applied yet.
type change struct {
	event Event
	cs    storage.ChangeSet

	// Staged balances, optional.
	batch *ledger.Batch
	// Staged allowances, optional.
	allowances *ledger.AllowanceBatch
	// Applies non-ledger changes, optional.
	apply func()
}

// commit persists and applies validated change. Must be called under the
// write lock.
func (e *Engine) commit(kind Kind, c *change, err error) (Event, error) {
	if err != nil {
		e.metrics.observe(kind, err)
		e.log.Debug("operation rejected",
			zap.Stringer("kind", kind),
			zap.String("code", string(common.GetCode(err))),
			zap.Error(err))
		return Event{}, fmt.Errorf("%s: %w", kind, err)
	}

	c.cs.Height = e.height + 1
	if c.batch != nil {
		c.cs.Balances = c.batch.Changes()
		if c.batch.SupplyChanged() {
			c.cs.TotalSupply = c.batch.TotalSupply()
		}
	}
	if c.allowances != nil {
		c.cs.Allowances = c.allowances.Changes()
	}

	if e.store != nil {
		if err = e.store.Apply(&c.cs); err != nil {
			e.metrics.observe(kind, err)
			e.log.Error("failed to persist operation",
				zap.Stringer("kind", kind),
				zap.Uint64("height", c.cs.Height),
				zap.Error(err))
			return Event{}, fmt.Errorf("%s: persist: %w", kind, err)
		}
	}

	if c.batch != nil {
		c.batch.Commit()
	}
	if c.allowances != nil {
		c.allowances.Commit()
	}
	if c.apply != nil {
		c.apply()
	}

	e.height = c.cs.Height

	ev := c.event
	ev.ID = uuid.New()
	ev.Height = e.height
	ev.Kind = kind

	e.metrics.observe(kind, nil)
	e.metrics.setHeight(e.height)

	logf := e.log.Debug
	if kind.administrative() {
		logf = e.log.Info
	}

	logf("operation applied",
		zap.Stringer("kind", kind),
		zap.Uint64("height", ev.Height),
		zap.Stringer("operator", ev.Operator),
		zap.Stringer("from", ev.From),
		zap.Stringer("to", ev.To),
		zap.String("amount", ev.Amount.Dec()),
		zap.String("fee", ev.Fee.Dec()))

	if e.onEvent != nil {
		e.onEvent(ev)
	}

	return ev, nil
}

func requireAmount(amount *uint256.Int) error {
	if amount == nil {
		return fmt.Errorf("%w: missing amount", common.ErrInvalidArgument)
	}
	return nil
}

func requirePositive(amount *uint256.Int) error {
	if err := requireAmount(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return fmt.Errorf("%w: zero amount", common.ErrInvalidArgument)
	}
	return nil
}
