package settle

import "errors"

// Error kinds surfaced by the settlement engine. Every failed call reports
// exactly one of these and leaves no partial state behind.
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrNotForSale           = errors.New("not for sale")
	ErrAuctionClosed        = errors.New("auction closed")
	ErrAuctionNotReady      = errors.New("auction not ready")
	ErrAlreadyEnded         = errors.New("auction already ended")
	ErrInsufficientPayment  = errors.New("insufficient payment")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrBidTooLow            = errors.New("bid too low")
	ErrRoyaltyNotConfigured = errors.New("royalty not configured")
	ErrInvariantViolation   = errors.New("invariant violation")
)
