// Package errors provides structured error handling for the homestead API.
//
// Every error carries a stable, machine-readable Code so callers can branch
// on outcomes (tile occupied, insufficient funds, not found) without parsing
// messages or leaking storage-layer error codes to clients.
//
// Basic usage:
//
//	if balance < price {
//		return errors.FailedPrecondition("insufficient chron balance")
//	}
//
// Wrapping storage errors:
//
//	if err != nil {
//		return errors.Wrapf(err, "failed to load map %s", mapID)
//	}
//
// Checking error types:
//
//	if errors.IsAlreadyExists(err) {
//		// tile was occupied, let the caller pick another tile
//	}
package errors
