package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appidentity "github.com/7Spade/tortoise/internal/application/identity"
	appmembership "github.com/7Spade/tortoise/internal/application/membership"
	apporg "github.com/7Spade/tortoise/internal/application/organization"
	"github.com/7Spade/tortoise/internal/application/ports"
	appworkspace "github.com/7Spade/tortoise/internal/application/workspace"
	"github.com/7Spade/tortoise/internal/config"
	"github.com/7Spade/tortoise/internal/domain"
	wsdomain "github.com/7Spade/tortoise/internal/domain/workspace"
	infraauth "github.com/7Spade/tortoise/internal/infrastructure/auth"
	httprouter "github.com/7Spade/tortoise/internal/infrastructure/http"
	"github.com/7Spade/tortoise/internal/infrastructure/http/handlers"
	"github.com/7Spade/tortoise/internal/infrastructure/http/middleware"
	"github.com/7Spade/tortoise/internal/infrastructure/persistence/postgres"
	"github.com/7Spade/tortoise/internal/infrastructure/queue"
	"github.com/7Spade/tortoise/internal/infrastructure/security"
	"github.com/7Spade/tortoise/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	identityRepo := postgres.NewIdentityRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)

	var emitter ports.WebhookEmitter
	if cfg.Webhook.URL != "" {
		opts := []webhook.HTTPEmitterOption{}
		if cfg.Webhook.APIKey != "" {
			opts = append(opts, webhook.WithHeader("X-API-Key", cfg.Webhook.APIKey))
		}
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, opts...)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	var publisher ports.EventPublisher
	var worker *queue.Worker
	if redisClient != nil {
		asynqOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		asynqPub := queue.NewAsynqPublisher(asynqOpt, log)
		defer asynqPub.Close()
		publisher = asynqPub
		worker = queue.NewWorker(asynqOpt, emitter, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		publisher = queue.NewNoopPublisher()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	privateKey, err := infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT private key")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	authProvider := infraauth.NewProvider(identityRepo, hasher, issuer, cfg.JWT.AccessExpiry, log)

	registerUC := appidentity.NewRegisterUser(identityRepo, hasher)
	signInUC := appidentity.NewSignIn(identityRepo, hasher, issuer, cfg.JWT.AccessExpiry)
	assumeOrgUC := appidentity.NewAssumeOrganization(membershipRepo, issuer, cfg.JWT.AccessExpiry)
	createBotUC := appidentity.NewCreateBot(identityRepo)

	wsFactory := wsdomain.NewFactory()
	wsPolicy := wsdomain.NewOperationPolicy()
	createWorkspaceUC := appworkspace.NewCreateWorkspace(workspaceRepo, wsFactory, publisher)
	archiveWorkspaceUC := appworkspace.NewArchiveWorkspace(workspaceRepo, wsPolicy, publisher)
	activateWorkspaceUC := appworkspace.NewActivateWorkspace(workspaceRepo, wsPolicy, publisher)
	deleteWorkspaceUC := appworkspace.NewDeleteWorkspace(workspaceRepo, publisher)
	addModuleUC := appworkspace.NewAddModule(workspaceRepo, wsPolicy, publisher)
	removeModuleUC := appworkspace.NewRemoveModule(workspaceRepo, publisher)

	createOrgUC := apporg.NewCreateOrganization(identityRepo, publisher)
	addMemberUC := apporg.NewAddMember(identityRepo, publisher)
	addTeamUC := apporg.NewAddTeam(identityRepo, publisher)
	addPartnerUC := apporg.NewAddPartner(identityRepo, publisher)
	addTeamMemberUC := apporg.NewAddTeamMember(identityRepo, publisher)
	addPartnerMemberUC := apporg.NewAddPartnerMember(identityRepo, publisher)

	createMembershipUC := appmembership.NewCreateMembership(membershipRepo, publisher)
	activateMembershipUC := appmembership.NewActivateMembership(membershipRepo, publisher)
	suspendMembershipUC := appmembership.NewSuspendMembership(membershipRepo, publisher)
	changeRoleUC := appmembership.NewChangeRole(membershipRepo, publisher)
	transferOwnershipUC := appmembership.NewTransferOwnership(membershipRepo, publisher)

	var defaultQuota *domain.WorkspaceQuota
	if cfg.Quota.MaxModules > 0 || cfg.Quota.MaxStorage > 0 {
		q, err := domain.NewWorkspaceQuota(quotaOrUnlimited(cfg.Quota.MaxModules), quotaOrUnlimited(cfg.Quota.MaxStorage))
		if err != nil {
			log.Fatal().Err(err).Msg("default workspace quota")
		}
		defaultQuota = &q
	}

	authHandler := handlers.NewAuthHandler(registerUC, signInUC, assumeOrgUC, authProvider, log)
	usersHandler := handlers.NewUsersHandler(identityRepo, authProvider, createBotUC, log)
	workspacesHandler := handlers.NewWorkspacesHandler(
		createWorkspaceUC, archiveWorkspaceUC, activateWorkspaceUC, deleteWorkspaceUC,
		addModuleUC, removeModuleUC, workspaceRepo, defaultQuota, log,
	)
	organizationsHandler := handlers.NewOrganizationsHandler(
		createOrgUC, addMemberUC, addTeamUC, addPartnerUC,
		addTeamMemberUC, addPartnerMemberUC, identityRepo, log,
	)
	membershipsHandler := handlers.NewMembershipsHandler(
		createMembershipUC, activateMembershipUC, suspendMembershipUC,
		changeRoleUC, transferOwnershipUC, membershipRepo, log,
	)

	rateFormatted := fmt.Sprintf("%d-M", cfg.RateLimit.RequestsPerMinute)
	ipLimit, err := middleware.NewIPRateLimiter(rateFormatted)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	orgLimit, err := middleware.NewOrgRateLimiter(rateFormatted)
	if err != nil {
		log.Fatal().Err(err).Msg("create organization rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Server.IsDevelopment()))

	requireJWT := middleware.NewAuthValidator(issuer).Handler
	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:          authHandler,
		HealthHandler:        healthHandler,
		UsersHandler:         usersHandler,
		WorkspacesHandler:    workspacesHandler,
		OrganizationsHandler: organizationsHandler,
		MembershipsHandler:   membershipsHandler,
		RequireJWT:           requireJWT,
		OrgRateLimit:         orgLimit,
		Log:                  log,
		Secure:               secureMiddleware,
		IPRateLimit:          ipLimit,
		AllowedOrigins:       cfg.Server.AllowedOrigins,
		Metrics:              true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("server stopped")
}

func quotaOrUnlimited(v int64) int64 {
	if v <= 0 {
		return domain.UnlimitedQuota
	}
	return v
}
