// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	contractsfeature "github.com/dalemusser/freighthub/internal/app/features/contracts"
	healthfeature "github.com/dalemusser/freighthub/internal/app/features/health"
	notificationsfeature "github.com/dalemusser/freighthub/internal/app/features/notifications"
	catalogstore "github.com/dalemusser/freighthub/internal/app/store/catalog"
	customerrepostore "github.com/dalemusser/freighthub/internal/app/store/customerrepo"
	directorystore "github.com/dalemusser/freighthub/internal/app/store/directory"
	mailboxstore "github.com/dalemusser/freighthub/internal/app/store/mailbox"
	pincodestore "github.com/dalemusser/freighthub/internal/app/store/pincodes"
	quotationstore "github.com/dalemusser/freighthub/internal/app/store/quotations"
	vendorrepostore "github.com/dalemusser/freighthub/internal/app/store/vendorrepo"
	"github.com/dalemusser/freighthub/internal/app/system/approval"
	"github.com/dalemusser/freighthub/internal/app/system/assignment"
	"github.com/dalemusser/freighthub/internal/app/system/auth"
	"github.com/dalemusser/freighthub/internal/app/system/notify"
	"github.com/dalemusser/freighthub/internal/app/system/serviceability"
	"github.com/dalemusser/freighthub/internal/app/system/steplog"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. FreightHub wires the stores, the
// assignment and approval coordinators, notification fan-out, and mounts
// the feature routers for the JSON API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Session cookies are issued by the portal; this service only decodes
	// them, with the portal's key and cookie name.
	auth.SessionName = appCfg.SessionName
	auth.InitSessionStore([][]byte{[]byte(appCfg.SessionKey)}, appCfg.SessionDomain)

	db := deps.MongoDatabase
	directory := directorystore.New(db)
	catalog := catalogstore.New(db)
	repo := customerrepostore.New(db)
	vendorrepo := vendorrepostore.New(db)
	quotations := quotationstore.New(db)
	pincodes := pincodestore.New(db)
	mailbox := mailboxstore.New(db)

	steps := steplog.New(logger)

	var push notify.PushGateway
	if deps.Push != nil {
		push = deps.Push
	}
	dispatcher := notify.NewDispatcher(mailbox, push, appCfg.NotificationIDPrefix, logger)

	propagator := serviceability.New(pincodes)
	guard := approval.NewGuard(repo)

	assigner := assignment.NewCoordinator(directory, catalog, repo, quotations, dispatcher, steps)
	approver := approval.NewCoordinator(directory, catalog, repo, vendorrepo, guard, propagator, dispatcher, steps)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Push, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	contractsHandler := contractsfeature.NewHandler(assigner, approver, repo, logger)
	r.Mount("/contracts", contractsfeature.Routes(contractsHandler))

	notificationsHandler := notificationsfeature.NewHandler(mailbox, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))

	return r, nil
}
