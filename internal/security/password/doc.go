// Package password hashes and verifies user passwords.
//
// The algorithm and its work factor are fixed for the lifetime of a process
// and carried by an explicitly constructed Config. Digests are
// self-describing (bcrypt's $2a$ prefix, argon2id's PHC string), so a
// Hasher can verify digests produced with older parameters.
package password
