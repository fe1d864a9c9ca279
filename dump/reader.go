package dump

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/ledger"
	"github.com/houssamboudiar/mockusdt-tron/storage"
)

// IterateDumps iterates over all token dumps collected by the Creator model
// in the specified directory, and passes ID and Reader of each dump into f.
// Files not matching the model and nested directories are skipped.
func IterateDumps(dir string, f func(ID, *Reader)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, e error) error {
		if errors.Is(e, fs.ErrNotExist) {
			return nil
		}
		if e != nil {
			return e
		}

		if d.IsDir() {
			if path != dir {
				return fs.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !strings.HasSuffix(name, sep+tokenFileSuffix) {
			return nil
		}

		var id ID

		err := id.decodeString(name)
		if err != nil {
			return fmt.Errorf("decode dump ID from file name '%s': %w", name, err)
		}

		r, err := Open(dir, id)
		if err != nil {
			return fmt.Errorf("open dump '%s': %w", id, err)
		}

		f(id, r)

		return nil
	})
}

// Reader reads the token state collected in the superior dump.
type Reader struct {
	state storage.State
}

// Open reads the dump with the given ID from the directory.
func Open(dir string, id ID) (*Reader, error) {
	var streams dumpStreams

	err := initDumpStreams(&streams, dir, id, true)
	if err != nil {
		streams.close()
		return nil, err
	}

	defer streams.close()

	var r Reader

	err = r.fromDumpStreams(streams.token, streams.ledger)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func (x *Reader) fromDumpStreams(rToken, rLedger io.Reader) error {
	var rec tokenRecord

	err := json.NewDecoder(rToken).Decode(&rec)
	if err != nil {
		return fmt.Errorf("decode token metadata from JSON: %w", err)
	}

	x.state = storage.State{
		Name:      rec.Name,
		Symbol:    rec.Symbol,
		Decimals:  rec.Decimals,
		Height:    rec.Height,
		Owner:     rec.Owner,
		Paused:    rec.Paused,
		Blacklist: rec.Blacklist,
		FeeRate:   rec.FeeRate,
	}

	if rec.FeeRecipient != nil {
		x.state.FeeRecipient = *rec.FeeRecipient
	}

	err = x.state.TotalSupply.SetFromDecimal(rec.TotalSupply)
	if err != nil {
		return fmt.Errorf("decode total supply: %w", err)
	}

	var row []string

	_csv := csv.NewReader(rLedger)
	_csv.FieldsPerRecord = 4
	_csv.ReuseRecord = true

	for {
		row, err = _csv.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read next CSV record: %w", err)
		}

		// out-of-range safety guaranteed by csv settings
		switch row[0] {
		case kindBalance:
			var b ledger.Balance

			b.Account, err = address.DecodeString(row[1])
			if err != nil {
				return fmt.Errorf("decode balance account: %w", err)
			}

			err = b.Amount.SetFromDecimal(row[3])
			if err != nil {
				return fmt.Errorf("decode balance of %s: %w", b.Account, err)
			}

			x.state.Balances = append(x.state.Balances, b)
		case kindAllowance:
			var a ledger.Allowance

			a.Owner, err = address.DecodeString(row[1])
			if err != nil {
				return fmt.Errorf("decode allowance owner: %w", err)
			}

			a.Spender, err = address.DecodeString(row[2])
			if err != nil {
				return fmt.Errorf("decode allowance spender: %w", err)
			}

			err = a.Amount.SetFromDecimal(row[3])
			if err != nil {
				return fmt.Errorf("decode allowance %s -> %s: %w", a.Owner, a.Spender, err)
			}

			x.state.Allowances = append(x.state.Allowances, a)
		default:
			return fmt.Errorf("unknown record kind '%s'", row[0])
		}
	}
}

// State returns the token state from the superior dump. The result must not
// be modified.
func (x *Reader) State() *storage.State {
	return &x.state
}
