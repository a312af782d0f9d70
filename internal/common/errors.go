// Package common defines shared constants and sentinel errors used across
// certmint components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound   = errors.New("certificate not found")
	ErrValidation = errors.New("validation error")

	// Minting flow errors (checked before any external call is made).
	ErrNoWallet       = errors.New("no wallet connected")
	ErrMintInProgress = errors.New("mint already in progress")
)
