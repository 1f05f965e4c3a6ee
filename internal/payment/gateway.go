package payment

import "go.uber.org/zap"

// Gateway pushes value out of the engine to a principal's real payment
// destination. Transfers are the one operation in the system that can fail
// for reasons outside our control.
type Gateway interface {
	Transfer(principal string, amount uint64) error
}

type logGateway struct{}

// NewLogGateway returns a gateway that accepts every transfer and only logs
// it. Used when no external payout integration is configured.
func NewLogGateway() Gateway {
	return logGateway{}
}

func (g logGateway) Transfer(principal string, amount uint64) error {
	zap.L().With(
		zap.String("principal", principal),
		zap.Uint64("amount", amount),
	).Info("Payment: Transfer")

	return nil
}
