package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	PassengersCollection = "Passengers"
	PaymentsCollection   = "Payments"
	UsersCollection      = "Users"
)

// WithTimeout bounds ctx by timeout unless ctx already expires sooner.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// IsDuplicateKey reports a unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
