// Package txn runs multi-document Mongo operations in a transaction
// when the deployment supports one, falling back to plain execution on
// standalone servers.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Func contains the database operations to run. The context it receives
// is a mongo.SessionContext when a transaction is active.
type Func func(ctx context.Context) error

// Run executes fn inside a transaction if the server allows it. On
// standalone MongoDB (no replica set) the operations run directly, so
// callers must tolerate partial application in that configuration.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn Func) error {
	session, err := db.Client().StartSession()
	if err != nil {
		if log != nil {
			log.Warn("failed to start session, running without transaction", zap.Error(err))
		}
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		if isNotSupported(err) {
			if log != nil {
				log.Warn("transactions not supported, running without transaction", zap.Error(err))
			}
			return fn(ctx)
		}
		return err
	}
	return nil
}

// isNotSupported reports whether err means the server cannot run
// multi-document transactions at all, as opposed to a failed one.
func isNotSupported(err error) bool {
	if err == nil {
		return false
	}

	// 20: transaction numbers require a replica set member or mongos.
	// 51: IllegalOperation.
	if cmdErr, ok := err.(mongo.CommandError); ok {
		switch cmdErr.Code {
		case 20, 51:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "not supported"))
}
