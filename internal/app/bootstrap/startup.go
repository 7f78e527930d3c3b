// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/notify"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/tasks"
)

// taskRunner and notifier are created in Startup and stopped in Shutdown.
var (
	taskRunner *tasks.Runner
	notifier   *notify.Notifier
)

// Startup runs once after DB connections and schema setup are complete,
// but before the HTTP handler is built and requests are served.
//
// It starts the background task runner (contact cleanup, expired job
// closing) and the notification worker that delivers contact-form emails.
// Returning a non-nil error aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	notifier = notify.New(deps.Mailer, logger)
	startTaskRunner(deps.MongoDatabase, logger)
	return nil
}

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(db *mongo.Database, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	taskRunner.Register(tasks.SpamCleanupJob(db, logger))
	taskRunner.Register(tasks.HandledSubmissionCleanupJob(db, logger))
	taskRunner.Register(tasks.ExpiredJobCloseJob(db, logger))

	taskRunner.Start()
}
