package errors

import "errors"

var (
	ErrDuplicatePayment = errors.New("payment already recorded")

	ErrGatewayRejected = errors.New("payment gateway rejected the request")
)
