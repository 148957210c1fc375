// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authfeature "github.com/nolanmercer/taskforge/internal/app/features/auth"
	errorsfeature "github.com/nolanmercer/taskforge/internal/app/features/errors"
	healthfeature "github.com/nolanmercer/taskforge/internal/app/features/health"
	notificationsfeature "github.com/nolanmercer/taskforge/internal/app/features/notifications"
	reportsfeature "github.com/nolanmercer/taskforge/internal/app/features/reports"
	tasksfeature "github.com/nolanmercer/taskforge/internal/app/features/tasks"
	teamfeature "github.com/nolanmercer/taskforge/internal/app/features/team"
	usersfeature "github.com/nolanmercer/taskforge/internal/app/features/users"
	notificationstore "github.com/nolanmercer/taskforge/internal/app/store/notifications"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	sysauth "github.com/nolanmercer/taskforge/internal/app/system/auth"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It creates the stores, the token
// manager, and one handler per feature, then mounts each feature router
// under its API prefix.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	errLog := errorsfeature.NewErrorLogger(logger)

	users := userstore.New(deps.MongoDatabase)
	tasks := taskstore.New(deps.MongoDatabase)
	notifications := notificationstore.New(deps.MongoDatabase)

	tokens, err := sysauth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTExpiry, users, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	authHandler := authfeature.NewHandler(users, tokens, errLog, logger)
	r.Mount("/api/auth", authfeature.Routes(authHandler))

	// Task management
	tasksHandler := tasksfeature.NewHandler(tasks, users, notifications, errLog, logger)
	r.Mount("/api/tasks", tasksfeature.Routes(tasksHandler, tokens))

	// Team management
	teamHandler := teamfeature.NewHandler(users, tasks, errLog, logger)
	r.Mount("/api/team", teamfeature.Routes(teamHandler, tokens))

	// User management and profiles
	usersHandler := usersfeature.NewHandler(users, errLog, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler, tokens))

	// Notifications
	notificationsHandler := notificationsfeature.NewHandler(notifications, errLog, logger)
	r.Mount("/api/notifications", notificationsfeature.Routes(notificationsHandler, tokens))

	// Reporting engine
	reportsHandler := reportsfeature.NewHandler(tasks, users, errLog, logger)
	r.Mount("/api/reports", reportsfeature.Routes(reportsHandler, tokens))

	return r, nil
}
