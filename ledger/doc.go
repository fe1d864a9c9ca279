/*
Package ledger implements token accounting: balances of all accounts, the
total supply and spending allowances.

All amounts are unsigned 256-bit integers of minor token units. Accounts
without an entry hold nothing, and entries that drop to zero are removed, so
only non-zero balances and allowances are ever listed.

Ledger keeps the total supply equal to the sum of all balances after every
successful call. Several changes that must be applied together are staged in
a Batch and committed at once; a discarded Batch leaves the Ledger untouched.

Neither Ledger nor Allowances is safe for concurrent use.
*/
package ledger
