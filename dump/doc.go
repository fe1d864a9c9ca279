/*
Package dump provides I/O operations for snapshots of the token state.

A dump keeps everything needed to restore the token: metadata and
administrative settings in a JSON file, balances and allowances in a CSV
file. It is used to move the token between databases, to inspect the state
with ordinary tools and to prepare fixtures for tests.

The package works with dumps stored in the file system using human-readable
encoding. Existing dumps are never overwritten.
*/
package dump
