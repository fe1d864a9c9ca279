package dump

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/houssamboudiar/mockusdt-tron/address"
)

// ID is a unique identifier of the dump prepared according to the model
// described in the current package.
type ID struct {
	// Label of the dump source (e.g. mainnet, local).
	Label string
	// Token height at which the state was taken.
	Height uint64
}

// String returns hyphen-separated ID fields.
func (x ID) String() string {
	return x.Label + sep + strconv.FormatUint(x.Height, 10)
}

// decodes ID fields from the hyphen-separated string.
func (x *ID) decodeString(s string) error {
	ss := strings.Split(s, sep)
	if len(ss) < 3 {
		return fmt.Errorf("expected '%s'-separated string with at least 3 items", sep)
	}

	n, err := strconv.ParseUint(ss[len(ss)-2], 10, 64)
	if err != nil {
		return fmt.Errorf("decode height from '%s': %w", ss[len(ss)-2], err)
	}

	x.Label = strings.Join(ss[:len(ss)-2], sep)
	x.Height = n

	return nil
}

// tokenRecord is a JSON-encoded information about the dumped token.
type tokenRecord struct {
	Name         string            `json:"name"`
	Symbol       string            `json:"symbol"`
	Decimals     uint8             `json:"decimals"`
	Height       uint64            `json:"height"`
	Owner        address.Address   `json:"owner"`
	Paused       bool              `json:"paused"`
	Blacklist    []address.Address `json:"blacklist,omitempty"`
	FeeRate      uint16            `json:"fee_rate"`
	FeeRecipient *address.Address  `json:"fee_recipient,omitempty"`
	TotalSupply  string            `json:"total_supply"`
}

// kinds of ledger CSV records.
const (
	kindBalance   = "balance"
	kindAllowance = "allowance"
)

// dumpStreams groups data streams for token metadata and ledger.
type dumpStreams struct {
	token, ledger io.ReadWriteCloser
}

// close closes all streams.
func (x *dumpStreams) close() {
	if x.ledger != nil {
		_ = x.ledger.Close()
	}
	if x.token != nil {
		_ = x.token.Close()
	}
}

const (
	// word separator used in dump file naming
	sep = "-"
	// suffix of file with token metadata
	tokenFileSuffix = "token.json"
	// suffix of file with balances and allowances
	ledgerFileSuffix = "ledger.csv"
)

// initDumpStreams opens data streams for the dump files located in the
// specified directory. If read flag is set, streams are read-only. Otherwise,
// files must not exist, and streams are write only.
func initDumpStreams(d *dumpStreams, dir string, id ID, read bool) error {
	var err error

	pathLedger := filepath.Join(dir, strings.Join([]string{id.String(), ledgerFileSuffix}, sep))
	if !read {
		if err = checkFileNotExists(pathLedger); err != nil {
			return err
		}
	}

	pathToken := filepath.Join(dir, strings.Join([]string{id.String(), tokenFileSuffix}, sep))
	if !read {
		if err = checkFileNotExists(pathToken); err != nil {
			return err
		}
	}

	var flag int
	var perm os.FileMode

	if read {
		flag = os.O_RDONLY
	} else {
		flag = os.O_CREATE | os.O_WRONLY
		perm = 0600
	}

	d.ledger, err = os.OpenFile(pathLedger, flag, perm)
	if err != nil {
		return fmt.Errorf("open file with ledger: %w", err)
	}

	d.token, err = os.OpenFile(pathToken, flag, perm)
	if err != nil {
		_ = d.ledger.Close()
		return fmt.Errorf("open file with token metadata: %w", err)
	}

	return nil
}

// checkFileNotExists checks that there is no file at the specified path.
func checkFileNotExists(p string) error {
	_, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err == nil {
		err = fs.ErrExist
	}
	return fmt.Errorf("dump file '%s' already exists or is inaccessible: %w", p, err)
}
