package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sebaxchen/lookSocial/internal/config"
	"github.com/sebaxchen/lookSocial/internal/events"
	"github.com/sebaxchen/lookSocial/internal/handler"
	"github.com/sebaxchen/lookSocial/internal/middleware"
	"github.com/sebaxchen/lookSocial/internal/palette"
	"github.com/sebaxchen/lookSocial/internal/reminder"
	"github.com/sebaxchen/lookSocial/internal/storage"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Server struct {
	Engine    *gin.Engine
	Cache     *storage.Local
	Remote    *storage.Remote
	Publisher *events.Publisher
	Reminder  *reminder.Reminder
	Config    *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	// Local cache is mandatory: the app must work offline.
	cache, err := storage.OpenLocal(cfg.CachePath)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Local cache ready")

	// The remote document store and the message broker are optional:
	// without them the app keeps everything local.
	var remote *storage.Remote
	if cfg.MongoURI != "" {
		remote, err = storage.ConnectRemote(ctx, cfg.MongoURI, cfg.MongoDBName, nil)
		if err != nil {
			log.Printf("⚠️  Remote store unavailable, staying local: %v", err)
			remote = nil
		} else {
			log.Println("✅ Connected to remote store")
		}
	}

	var publisher *events.Publisher
	if cfg.NATSUrl != "" {
		publisher, err = events.Connect(cfg.NATSUrl, nil)
		if err != nil {
			log.Printf("⚠️  NATS unavailable, events disabled: %v", err)
			publisher = nil
		} else {
			log.Println("✅ Connected to NATS")
		}
	}

	// Setup Gin
	r := gin.Default()

	// Initialize stores
	groupColors := palette.New()
	memberColors := palette.New()

	taskStore := store.NewTaskStore(ctx, cache, nil)
	groupStore := store.NewGroupStore(ctx, cache, groupColors, nil)
	teamStore := store.NewTeamStore(ctx, cache, memberColors, nil)
	fileStore := store.NewFileStore(ctx, cache, nil)
	prefsStore := store.NewPrefsStore(ctx, cache, nil)
	userStore := store.NewUserStore(ctx, cache, nil)

	var postBackend store.PostBackend
	var commentBackend store.CommentBackend
	var friendBackend store.FriendBackend
	if remote != nil {
		postBackend = remote
		commentBackend = remote
		friendBackend = remote
	}
	postStore := store.NewPostStore(postBackend, nil)
	postStore.StartSync(ctx)
	commentStore := store.NewCommentStore(commentBackend, postStore, nil)
	friendStore := store.NewFriendStore(friendBackend, nil)
	friendStore.RefreshUsers(ctx)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userStore, teamStore, friendStore)
	taskHandler := handler.NewTaskHandler(taskStore, groupStore, publisher)
	groupHandler := handler.NewGroupHandler(groupStore, taskStore, publisher)
	teamHandler := handler.NewTeamHandler(teamStore, publisher)
	postHandler := handler.NewPostHandler(postStore, userStore, publisher)
	commentHandler := handler.NewCommentHandler(commentStore, userStore)
	friendHandler := handler.NewFriendHandler(friendStore, publisher)
	fileHandler := handler.NewFileHandler(fileStore)
	statsHandler := handler.NewStatsHandler(taskStore, teamStore)
	prefsHandler := handler.NewPrefsHandler(prefsStore)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.GET("/me", userHandler.Me)

		// Task routes
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/board", taskHandler.Board)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.POST("/tasks/:id/status", taskHandler.UpdateStatus)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/board/clear-completed", taskHandler.ClearCompleted)

		// Group routes
		authorized.GET("/groups", groupHandler.List)
		authorized.POST("/groups", groupHandler.Create)
		authorized.GET("/groups/:id", groupHandler.GetByID)
		authorized.PUT("/groups/:id", groupHandler.Update)
		authorized.DELETE("/groups/:id", groupHandler.Delete)
		authorized.POST("/groups/:id/tasks", groupHandler.AssignTask)
		authorized.DELETE("/group-tasks/:taskId", groupHandler.UnassignTask)

		// Team routes
		authorized.GET("/team", teamHandler.List)
		authorized.POST("/team", teamHandler.Add)
		authorized.GET("/team/:id", teamHandler.GetByID)
		authorized.PUT("/team/:id", teamHandler.Update)
		authorized.DELETE("/team/:id", teamHandler.Remove)

		// Feed routes
		authorized.GET("/posts", postHandler.List)
		authorized.POST("/posts", postHandler.Publish)
		authorized.GET("/hashtags", postHandler.Hashtags)
		authorized.GET("/posts/:id", postHandler.GetByID)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/like", postHandler.Like)
		authorized.DELETE("/posts/:id/like", postHandler.Unlike)
		authorized.POST("/posts/:id/reshare", postHandler.Reshare)
		authorized.POST("/posts/:id/view", postHandler.View)
		authorized.GET("/posts/:id/comments", commentHandler.List)
		authorized.POST("/posts/:id/comments", commentHandler.Add)

		// Friend routes
		authorized.GET("/users", friendHandler.Users)
		authorized.GET("/friends/:id/status", friendHandler.Status)
		authorized.POST("/friends/:id/request", friendHandler.Request)
		authorized.POST("/friends/:id/accept", friendHandler.Accept)
		authorized.POST("/friends/:id/reject", friendHandler.Reject)

		// Shared file routes
		authorized.GET("/files", fileHandler.List)
		authorized.POST("/files", fileHandler.Add)
		authorized.GET("/files/:id", fileHandler.GetByID)
		authorized.DELETE("/files/:id", fileHandler.Delete)
		authorized.POST("/files/:id/share", fileHandler.Share)

		// Dashboard routes
		authorized.GET("/stats/summary", statsHandler.Summary)
		authorized.GET("/stats/productivity", statsHandler.Productivity)
		authorized.GET("/preferences", prefsHandler.Get)
		authorized.PUT("/preferences", prefsHandler.Set)
		authorized.POST("/preferences/toggle-home", prefsHandler.Toggle)
	}

	rem := reminder.New(taskStore, publisher, nil)

	return &Server{
		Engine:    r,
		Cache:     cache,
		Remote:    remote,
		Publisher: publisher,
		Reminder:  rem,
		Config:    cfg,
	}, nil
}

func (s *Server) Run() {
	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   s.Config.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: corsWrapper.Handler(s.Engine),
	}

	if err := s.Reminder.Start(); err != nil {
		log.Printf("⚠️  Reminder scheduler failed to start: %v", err)
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	s.Reminder.Stop()
	s.Publisher.Close()
	if s.Remote != nil {
		if err := s.Remote.Close(ctx); err != nil {
			log.Printf("⚠️  Remote store close: %v", err)
		}
	}

	log.Println("✅ Server exited properly")
}
