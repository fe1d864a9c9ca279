/*
Package storage persists token state in LevelDB.

State is the complete persisted surface of the token. A fresh database is
filled with Save, after that every successful token operation writes its
ChangeSet with Apply. Both are written as a single LevelDB batch, so the
database never holds a partially applied operation.

# Storage model

Key-value format:
  - 'v' -> uint32 LE
    version of the state layout, see common.Version
  - 'm' -> varstring name, varstring symbol, uint8 decimals
    token metadata
  - 'h' -> uint64 LE
    number of applied operations
  - 'o' -> address
    token owner
  - 'p' -> bool
    pause flag
  - 'f' -> uint16 LE rate, address recipient
    transfer fee configuration
  - 's' -> uint256 BE (32 bytes)
    total supply
  - 'b' + address -> uint256 BE (32 bytes)
    non-zero account balances
  - 'a' + owner address + spender address -> uint256 BE (32 bytes)
    non-zero allowances
  - 'k' + address -> empty
    blacklisted accounts
*/
package storage
