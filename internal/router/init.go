package router

import (
	"github.com/chirper-app/chirper/internal/application"
	"github.com/chirper-app/chirper/internal/container"
	pginfra "github.com/chirper-app/chirper/internal/infrastructure/postgres"
	handlers "github.com/chirper-app/chirper/internal/interface/http"
	"github.com/chirper-app/chirper/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module with the registry. Call once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	storage := container.GetStorage()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	posts := pginfra.NewPostRepository(pool)
	follows := pginfra.NewFollowRepository(pool)
	reactions := pginfra.NewReactionRepository(pool)
	messages := pginfra.NewMessageRepository(pool)

	visibility := application.NewVisibilityPolicy(users, follows)
	pages := application.PageLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}

	// Assign through the interface only when the publisher exists, so the
	// nil check inside the service still works.
	var emails application.EmailPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		emails = pub
	}

	authSvc := application.NewAuthService(users, jwt, emails, container.GetES(), cfg.ESUsersIndex, logger)
	userSvc := application.NewUserService(users, follows, visibility, storage, container.GetES(), cfg.ESUsersIndex, pages, logger)
	postSvc := application.NewPostService(posts, visibility, storage, pages, logger)
	commentSvc := application.NewCommentService(posts, visibility, postSvc, storage, pages, logger)
	reactionSvc := application.NewReactionService(reactions, posts, visibility, storage, pages, logger)
	followSvc := application.NewFollowService(follows, users, logger)
	messageSvc := application.NewMessageService(messages, follows, users, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), jwt))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(commentSvc, logger), jwt))
	r.Add(modules.NewReactionModule(handlers.NewReactionHandler(reactionSvc, logger), jwt))
	r.Add(modules.NewFollowModule(handlers.NewFollowHandler(followSvc, logger), jwt))
	r.Add(modules.NewMessageModule(handlers.NewMessageHandler(messageSvc, container.GetWSHub(), logger), jwt))
}

// MessageService rebuilds the DM service for callers outside the HTTP
// registry, such as the websocket handler.
func MessageService() *application.MessageService {
	pool := container.GetPGPool()
	return application.NewMessageService(
		pginfra.NewMessageRepository(pool),
		pginfra.NewFollowRepository(pool),
		pginfra.NewUserRepository(pool),
		container.GetLogger(),
	)
}
