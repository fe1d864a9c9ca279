package dump

import (
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/houssamboudiar/mockusdt-tron/storage"
)

// Creator dumps token states. Output file format:
//
//	'<label>-<height>-token.json': JSON object with token metadata
//	'<label>-<height>-ledger.csv': CSV of balances and allowances
//
// Ledger CSV are 'kind,key1,key2,amount' where kind is 'balance' or
// 'allowance'. Balance records hold the account in key1 and leave key2
// empty, allowance records hold the owner and the spender. Addresses are
// base58check-encoded, amounts are decimal minor units.
//
// Use IterateDumps to access existing dumps.
type Creator struct {
	dumpStreams

	ledgerCSV *csv.Writer
}

// NewCreator returns Creator which dumps the token into given directory. The
// dump is identified by specified ID. Resulting Creator should be closed when
// finished working with it.
//
// NewCreator fails if dump with provided ID already exists.
func NewCreator(dir string, id ID) (*Creator, error) {
	var res Creator

	err := initDumpStreams(&res.dumpStreams, dir, id, false)
	if err != nil {
		res.close()
		return nil, err
	}

	res.ledgerCSV = csv.NewWriter(res.dumpStreams.ledger)

	return &res, nil
}

// Write writes given state to the file system.
func (x *Creator) Write(st *storage.State) error {
	rec := tokenRecord{
		Name:        st.Name,
		Symbol:      st.Symbol,
		Decimals:    st.Decimals,
		Height:      st.Height,
		Owner:       st.Owner,
		Paused:      st.Paused,
		Blacklist:   st.Blacklist,
		FeeRate:     st.FeeRate,
		TotalSupply: st.TotalSupply.Dec(),
	}

	if !st.FeeRecipient.IsZero() {
		rec.FeeRecipient = &st.FeeRecipient
	}

	jEnc := json.NewEncoder(x.dumpStreams.token)
	jEnc.SetIndent("", " ")

	err := jEnc.Encode(rec)
	if err != nil {
		return fmt.Errorf("encode token metadata to JSON: %w", err)
	}

	for i := range st.Balances {
		err = x.ledgerCSV.Write([]string{
			kindBalance,
			st.Balances[i].Account.String(),
			"",
			st.Balances[i].Amount.Dec(),
		})
		if err != nil {
			return fmt.Errorf("write balance as CSV data: %w", err)
		}
	}

	for i := range st.Allowances {
		err = x.ledgerCSV.Write([]string{
			kindAllowance,
			st.Allowances[i].Owner.String(),
			st.Allowances[i].Spender.String(),
			st.Allowances[i].Amount.Dec(),
		})
		if err != nil {
			return fmt.Errorf("write allowance as CSV data: %w", err)
		}
	}

	x.ledgerCSV.Flush()

	err = x.ledgerCSV.Error()
	if err != nil {
		return fmt.Errorf("flush CSV data: %w", err)
	}

	return nil
}

// Close releases underlying resources of the Creator and makes it unusable.
func (x *Creator) Close() {
	x.close()
}
