/*
Package token implements an owner-governed fungible token ledger.

Engine is the only entry point of the token. It keeps balances, total supply
and allowances, and enforces the owner's administrative settings: pause,
blacklist and transfer fee. Token amounts are unsigned 256-bit integers of
minor units with 6 decimals (1 token = 1_000_000 units).

Every state-changing method either applies fully and returns an Event, or
fails with an error wrapping one of the common package errors and leaves the
token untouched. Methods are safe for concurrent use: each one is executed
under a single lock covering the whole token state.

# Operations

Transfer and TransferFrom move assets between accounts. Both are rejected
while the token is paused or if the sender or the recipient is blacklisted.
The transfer fee is deducted from the moved amount and credited to the fee
recipient.

Approve sets the exact amount a spender may transfer from the owner's
balance with TransferFrom. Approve is available while the token is paused.

Mint, Burn, Pause, Unpause, AddToBlacklist, RemoveFromBlacklist, SetFee and
TransferOwnership can be invoked only by the token owner. They stay
available while the token is paused. Burn destroys assets of the owner's
own balance.

# Events

Each applied operation produces Event with the operation kind and
participants:

	Transfer, TransferFrom:
	  - From: sender (asset owner for TransferFrom)
	  - To: recipient
	  - Operator: caller (spender for TransferFrom)
	  - Amount: debited amount
	  - Fee: part of Amount credited to the fee recipient

	Approval:
	  - From: asset owner
	  - To: spender
	  - Amount: new allowance

	Mint, Burn:
	  - To (Mint) or From (Burn): affected account
	  - Amount: issued or destroyed amount

	Pause, Unpause, Blacklisted, Unblacklisted, FeeChanged, OwnershipTransferred:
	  - Operator: owner at the moment of the call
	  - To: affected account (new owner, fee recipient)
	  - FeeRate: new rate for FeeChanged

# Persistence

Engine optionally writes every applied operation into a Store before
changing its in-memory state, see package storage.
*/
package token
