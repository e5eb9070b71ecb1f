package model

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialKind selects which password-storage scheme applies to an account.
type CredentialKind int

const (
	// CredentialNone means the account has no usable password at all.
	CredentialNone CredentialKind = iota
	// CredentialPlaintext means the current scheme: the password column
	// holds the literal password value.
	CredentialPlaintext
	// CredentialLegacyHash means only the old bcrypt hash remains.
	CredentialLegacyHash
)

// CredentialRecord is the tagged variant an account's password resolves to.
// A non-empty plaintext column always wins over the legacy hash.
type CredentialRecord struct {
	Kind  CredentialKind
	Value string
}

// CredentialOf resolves the account's stored password into a single
// CredentialRecord, applying the plaintext-takes-precedence rule.
func CredentialOf(a Account) CredentialRecord {
	if a.Password.Valid && a.Password.String != "" {
		return CredentialRecord{Kind: CredentialPlaintext, Value: a.Password.String}
	}
	if a.PasswordHash.Valid && a.PasswordHash.String != "" {
		return CredentialRecord{Kind: CredentialLegacyHash, Value: a.PasswordHash.String}
	}
	return CredentialRecord{Kind: CredentialNone}
}

// Verify reports whether plain matches the stored credential. Plaintext
// values are compared in constant time; legacy hashes go through bcrypt,
// which is constant-time internally.
func (r CredentialRecord) Verify(plain string) bool {
	switch r.Kind {
	case CredentialPlaintext:
		if len(r.Value) != len(plain) {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(r.Value), []byte(plain)) == 1
	case CredentialLegacyHash:
		return bcrypt.CompareHashAndPassword([]byte(r.Value), []byte(plain)) == nil
	default:
		return false
	}
}
