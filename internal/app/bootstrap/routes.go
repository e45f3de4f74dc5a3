// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authapifeature "github.com/sayamjn/SHG/internal/app/features/authapi"
	groupsfeature "github.com/sayamjn/SHG/internal/app/features/groups"
	healthfeature "github.com/sayamjn/SHG/internal/app/features/health"
	membersfeature "github.com/sayamjn/SHG/internal/app/features/members"
	schemesfeature "github.com/sayamjn/SHG/internal/app/features/schemes"
	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	memberstore "github.com/sayamjn/SHG/internal/app/store/members"
	schemestore "github.com/sayamjn/SHG/internal/app/store/schemes"
	"github.com/sayamjn/SHG/internal/app/store/sessions"
	"github.com/sayamjn/SHG/internal/app/system/auth"
	"github.com/sayamjn/SHG/internal/app/system/uploads"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The portal mounts its JSON API under
// /api, the health endpoint at /health, and (for local storage) the
// uploaded-file server under the configured URL prefix.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	groups := groupstore.New(db)
	members := memberstore.New(db, groups, logger)
	schemes := schemestore.New(db)
	sess := sessions.New(db, appCfg.SessionTTL)

	// Session manager resolves bearer tokens; the fetcher reloads group
	// identity on each request so deactivated groups lose access at once.
	sessionMgr := auth.NewSessionManager(sess, logger)
	sessionMgr.SetGroupFetcher(groupstore.NewFetcher(db))

	store, err := newStorage(appCfg, logger)
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}
	uploader := uploads.New(store, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the session group into context when a
	// valid bearer token is presented.
	r.Use(sessionMgr.LoadSession)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Get("/health", healthHandler.Serve)

	// Uploaded files (local storage only; S3 uses presigned URLs)
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Authentication
	authHandler := authapifeature.NewHandler(groups, sess, logger)
	r.Mount("/api/auth", authapifeature.Routes(authHandler, sessionMgr))

	// Group directory
	groupsHandler := groupsfeature.NewHandler(groups, members, sess, appCfg.BcryptCost, logger)
	r.Mount("/api/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	// Member registry
	membersHandler := membersfeature.NewHandler(members, groups, uploader, logger)
	r.Mount("/api/users", membersfeature.Routes(membersHandler, sessionMgr))

	// Scheme catalog
	schemesHandler := schemesfeature.NewHandler(schemes, uploader, logger)
	r.Mount("/api/schemes", schemesfeature.Routes(schemesHandler, sessionMgr))

	return r, nil
}
