/*
Package access implements administrative state of the token: the owner
account, the pause switch and the blacklist.

Control does not check who changes it: setters must be called only after
RequireAdmin succeeded for the caller.
*/
package access

import (
	"fmt"
	"slices"

	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/common"
)

// Control holds the owner, the pause flag and the blacklist. It is not safe
// for concurrent use.
type Control struct {
	owner     address.Address
	paused    bool
	blacklist map[address.Address]struct{}
}

// New returns Control owned by the given account. Owner must be a valid
// address.
func New(owner address.Address) (*Control, error) {
	if err := owner.Valid(); err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}
	return &Control{
		owner:     owner,
		blacklist: make(map[address.Address]struct{}),
	}, nil
}

// Restore returns Control with the given state. Blacklist may be nil.
func Restore(owner address.Address, paused bool, blacklist []address.Address) (*Control, error) {
	c, err := New(owner)
	if err != nil {
		return nil, err
	}
	c.paused = paused
	for i := range blacklist {
		if err = c.AddToBlacklist(blacklist[i]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Clone returns an independent copy of Control.
func (c *Control) Clone() *Control {
	res := &Control{
		owner:     c.owner,
		paused:    c.paused,
		blacklist: make(map[address.Address]struct{}, len(c.blacklist)),
	}
	for a := range c.blacklist {
		res.blacklist[a] = struct{}{}
	}
	return res
}

// Owner returns current token owner.
func (c *Control) Owner() address.Address {
	return c.owner
}

// Paused returns pause flag.
func (c *Control) Paused() bool {
	return c.paused
}

// IsBlacklisted checks whether the account is in the blacklist.
func (c *Control) IsBlacklisted(a address.Address) bool {
	_, ok := c.blacklist[a]
	return ok
}

// Blacklist returns sorted list of blacklisted accounts.
func (c *Control) Blacklist() []address.Address {
	res := make([]address.Address, 0, len(c.blacklist))
	for a := range c.blacklist {
		res = append(res, a)
	}
	slices.SortFunc(res, address.Address.Compare)
	return res
}

// RequireAdmin returns common.ErrUnauthorized unless caller is the owner.
func (c *Control) RequireAdmin(caller address.Address) error {
	if caller != c.owner {
		return common.ErrUnauthorized
	}
	return nil
}

// RequireNotPaused returns common.ErrPaused while the token is paused.
func (c *Control) RequireNotPaused() error {
	if c.paused {
		return common.ErrPaused
	}
	return nil
}

// RequireNotBlacklisted returns common.ErrBlacklisted if the account is in
// the blacklist.
func (c *Control) RequireNotBlacklisted(a address.Address) error {
	if c.IsBlacklisted(a) {
		return fmt.Errorf("%w: %s", common.ErrBlacklisted, a)
	}
	return nil
}

// SetPaused switches the pause flag.
func (c *Control) SetPaused(paused bool) {
	c.paused = paused
}

// AddToBlacklist puts the account into the blacklist. Adding an already
// blacklisted account is a no-op.
func (c *Control) AddToBlacklist(a address.Address) error {
	if err := a.Valid(); err != nil {
		return fmt.Errorf("blacklist: %w", err)
	}
	c.blacklist[a] = struct{}{}
	return nil
}

// RemoveFromBlacklist removes the account from the blacklist if it is there.
func (c *Control) RemoveFromBlacklist(a address.Address) {
	delete(c.blacklist, a)
}

// TransferOwnership makes newOwner the only administrator. Zero or
// malformed newOwner is rejected.
func (c *Control) TransferOwnership(newOwner address.Address) error {
	if err := newOwner.Valid(); err != nil {
		return fmt.Errorf("new owner: %w", err)
	}
	c.owner = newOwner
	return nil
}
