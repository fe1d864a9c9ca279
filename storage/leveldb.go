package storage

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/common"
	"github.com/houssamboudiar/mockusdt-tron/ledger"
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/syndtr/goleveldb/leveldb"
	ldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"go.uber.org/zap"
)

const (
	versionKey = 'v'
	metaKey    = 'm'
	heightKey  = 'h'
	ownerKey   = 'o'
	pausedKey  = 'p'
	feeKey     = 'f'
	supplyKey  = 's'

	balancePrefix   = 'b'
	allowancePrefix = 'a'
	blacklistPrefix = 'k'

	amountLen = 32
)

// fee recipient is unset while there is no fee.
var noAddress address.Address

// ErrEmpty is returned by Load when the database holds no state.
var ErrEmpty = errors.New("empty state database")

// LevelDB is a token state storage backed by LevelDB.
type LevelDB struct {
	log *zap.Logger
	db  *leveldb.DB
}

// Open opens or creates LevelDB database in the given directory.
func Open(path string, log *zap.Logger) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open LevelDB at '%s': %w", path, err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	log.Debug("state database opened", zap.String("path", path))

	return &LevelDB{log: log, db: db}, nil
}

// NewMemory returns LevelDB which keeps all data in memory.
func NewMemory(log *zap.Logger) (*LevelDB, error) {
	db, err := leveldb.Open(ldbstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open in-memory LevelDB: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &LevelDB{log: log, db: db}, nil
}

// Close releases the database.
func (s *LevelDB) Close() error {
	return s.db.Close()
}

// Save replaces everything stored in the database with the given State.
func (s *LevelDB) Save(st *State) error {
	b := new(leveldb.Batch)

	it := s.db.NewIterator(nil, nil)
	for it.Next() {
		b.Delete(it.Key())
	}
	it.Release()
	if err := it.Error(); err != nil {
		return fmt.Errorf("iterate stored state: %w", err)
	}

	w := io.NewBufBinWriter()
	w.WriteU32LE(common.Version)
	b.Put([]byte{versionKey}, w.Bytes())

	w.Reset()
	w.WriteString(st.Name)
	w.WriteString(st.Symbol)
	w.WriteB(st.Decimals)
	if w.Err != nil {
		return fmt.Errorf("encode token metadata: %w", w.Err)
	}
	b.Put([]byte{metaKey}, w.Bytes())

	blacklist := make(map[address.Address]bool, len(st.Blacklist))
	for i := range st.Blacklist {
		blacklist[st.Blacklist[i]] = true
	}

	putChanges(b, &ChangeSet{
		Height:      st.Height,
		Owner:       &st.Owner,
		Paused:      &st.Paused,
		Fee:         &Fee{Rate: st.FeeRate, Recipient: st.FeeRecipient},
		Blacklist:   blacklist,
		TotalSupply: &st.TotalSupply,
		Balances:    st.Balances,
		Allowances:  st.Allowances,
	})

	if err := s.db.Write(b, nil); err != nil {
		return fmt.Errorf("write state batch: %w", err)
	}

	s.log.Info("token state saved",
		zap.Uint64("height", st.Height),
		zap.Int("balances", len(st.Balances)),
		zap.Int("allowances", len(st.Allowances)))

	return nil
}

// Apply writes the ChangeSet atomically.
func (s *LevelDB) Apply(cs *ChangeSet) error {
	b := new(leveldb.Batch)
	putChanges(b, cs)

	if err := s.db.Write(b, nil); err != nil {
		return fmt.Errorf("write change set at height %d: %w", cs.Height, err)
	}

	return nil
}

func putChanges(b *leveldb.Batch, cs *ChangeSet) {
	w := io.NewBufBinWriter()
	w.WriteU64LE(cs.Height)
	b.Put([]byte{heightKey}, w.Bytes())

	if cs.Owner != nil {
		b.Put([]byte{ownerKey}, cs.Owner[:])
	}

	if cs.Paused != nil {
		w.Reset()
		w.WriteBool(*cs.Paused)
		b.Put([]byte{pausedKey}, w.Bytes())
	}

	if cs.Fee != nil {
		w.Reset()
		w.WriteU16LE(cs.Fee.Rate)
		w.WriteBytes(cs.Fee.Recipient[:])
		b.Put([]byte{feeKey}, w.Bytes())
	}

	for a, listed := range cs.Blacklist {
		if listed {
			b.Put(prefixed(blacklistPrefix, a[:]), []byte{})
		} else {
			b.Delete(prefixed(blacklistPrefix, a[:]))
		}
	}

	if cs.TotalSupply != nil {
		b.Put([]byte{supplyKey}, encodeAmount(cs.TotalSupply))
	}

	for i := range cs.Balances {
		k := prefixed(balancePrefix, cs.Balances[i].Account[:])
		if cs.Balances[i].Amount.IsZero() {
			b.Delete(k)
		} else {
			b.Put(k, encodeAmount(&cs.Balances[i].Amount))
		}
	}

	for i := range cs.Allowances {
		k := prefixed(allowancePrefix, cs.Allowances[i].Owner[:], cs.Allowances[i].Spender[:])
		if cs.Allowances[i].Amount.IsZero() {
			b.Delete(k)
		} else {
			b.Put(k, encodeAmount(&cs.Allowances[i].Amount))
		}
	}
}

// Load reads the whole stored State. It returns ErrEmpty for a database
// without any state.
func (s *LevelDB) Load() (*State, error) {
	raw, err := s.db.Get([]byte{versionKey}, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read state version: %w", err)
	}

	r := io.NewBinReaderFromBuf(raw)
	version := r.ReadU32LE()
	if r.Err != nil {
		return nil, fmt.Errorf("decode state version: %w", r.Err)
	}

	if err = common.CheckVersion(version); err != nil {
		return nil, err
	}

	var st State

	it := s.db.NewIterator(nil, nil)
	defer it.Release()

	for it.Next() {
		if err = decodeItem(&st, it.Key(), it.Value()); err != nil {
			return nil, err
		}
	}

	if err = it.Error(); err != nil {
		return nil, fmt.Errorf("iterate stored state: %w", err)
	}

	return &st, nil
}

func decodeItem(st *State, k, v []byte) error {
	var err error

	switch k[0] {
	case versionKey:
	case metaKey:
		r := io.NewBinReaderFromBuf(v)
		st.Name = r.ReadString()
		st.Symbol = r.ReadString()
		st.Decimals = r.ReadB()
		err = r.Err
	case heightKey:
		r := io.NewBinReaderFromBuf(v)
		st.Height = r.ReadU64LE()
		err = r.Err
	case ownerKey:
		st.Owner, err = address.DecodeBytes(v)
	case pausedKey:
		r := io.NewBinReaderFromBuf(v)
		st.Paused = r.ReadBool()
		err = r.Err
	case feeKey:
		r := io.NewBinReaderFromBuf(v)
		st.FeeRate = r.ReadU16LE()
		recipient := make([]byte, address.Len)
		r.ReadBytes(recipient)
		if err = r.Err; err == nil && !bytes.Equal(recipient, noAddress[:]) {
			st.FeeRecipient, err = address.DecodeBytes(recipient)
		}
	case supplyKey:
		err = decodeAmount(&st.TotalSupply, v)
	case balancePrefix:
		var b ledger.Balance
		if b.Account, err = address.DecodeBytes(k[1:]); err == nil {
			err = decodeAmount(&b.Amount, v)
		}
		st.Balances = append(st.Balances, b)
	case allowancePrefix:
		var a ledger.Allowance
		if len(k) != 1+2*address.Len {
			err = fmt.Errorf("invalid key length %d", len(k))
			break
		}
		if a.Owner, err = address.DecodeBytes(k[1 : 1+address.Len]); err != nil {
			break
		}
		if a.Spender, err = address.DecodeBytes(k[1+address.Len:]); err != nil {
			break
		}
		err = decodeAmount(&a.Amount, v)
		st.Allowances = append(st.Allowances, a)
	case blacklistPrefix:
		var a address.Address
		a, err = address.DecodeBytes(k[1:])
		st.Blacklist = append(st.Blacklist, a)
	default:
		err = errors.New("unknown key prefix")
	}

	if err != nil {
		return fmt.Errorf("decode stored item with key %x: %w", k, err)
	}

	return nil
}

func prefixed(prefix byte, parts ...[]byte) []byte {
	k := []byte{prefix}
	for i := range parts {
		k = append(k, parts[i]...)
	}
	return k
}

func encodeAmount(v *uint256.Int) []byte {
	b := v.Bytes32()
	return b[:]
}

func decodeAmount(dst *uint256.Int, b []byte) error {
	if len(b) != amountLen {
		return fmt.Errorf("invalid amount length %d", len(b))
	}
	dst.SetBytes32(b)
	return nil
}
