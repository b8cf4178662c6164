package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"freelanceBack/internal/cache"
	"freelanceBack/internal/config"
	"freelanceBack/internal/handlers"
	"freelanceBack/internal/repositories"
	"freelanceBack/internal/services"
	"freelanceBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger

	userHandler      *handlers.UserHandler
	projectHandler   *handlers.ProjectHandler
	proposalHandler  *handlers.ProposalHandler
	milestoneHandler *handlers.MilestoneHandler
	paymentHandler   *handlers.PaymentHandler
	escrowHandler    *handlers.EscrowHandler
	payoutHandler    *handlers.PayoutHandler
	messageHandler   *handlers.MessageHandler

	userRepo     *repositories.UserRepository
	tokenManager *utils.Manager
	wsManager    *WebSocketManager

	cfg config.Config
	db  *sql.DB
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	projectRepo := repositories.ProjectRepository{DB: db}
	proposalRepo := repositories.ProposalRepository{DB: db}
	milestoneRepo := repositories.MilestoneRepository{DB: db}
	paymentRepo := repositories.PaymentRepository{DB: db}
	escrowRepo := repositories.EscrowRepository{DB: db}
	balanceRepo := repositories.BalanceRepository{DB: db}
	payoutRepo := repositories.PayoutRepository{DB: db}
	messageRepo := repositories.MessageRepository{DB: db}
	tokenRepo := repositories.DeviceTokenRepository{DB: db}

	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	storage := &utils.S3Storage{
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
		PublicURL: cfg.Storage.PublicURL,
	}

	stripeService, err := services.NewStripeService(services.StripeConfig{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURL:     cfg.Stripe.CancelURL,
		Currency:      cfg.Stripe.Currency,
		Logger:        slog.New(slog.NewTextHandler(os.Stdout, nil)),
	})
	if err != nil {
		errorLog.Fatal(err)
	}

	notificationService := &services.NotificationService{
		Client:    newMessagingClient(cfg, infoLog),
		TokenRepo: &tokenRepo,
	}

	// Services
	userService := &services.UserService{
		UserRepo:     &userRepo,
		TokenManager: tokenManager,
		Freelancers:  cache.NewFreelancerCache(rdb),
		Storage:      storage,
	}
	projectService := &services.ProjectService{ProjectRepo: &projectRepo}
	proposalService := &services.ProposalService{
		ProposalRepo:  &proposalRepo,
		ProjectRepo:   &projectRepo,
		UserRepo:      &userRepo,
		Notifications: notificationService,
	}
	milestoneService := &services.MilestoneService{
		MilestoneRepo: &milestoneRepo,
		ProjectRepo:   &projectRepo,
		Notifications: notificationService,
		Storage:       storage,
	}
	paymentService := &services.PaymentService{
		Payments: &paymentRepo,
		Projects: &projectRepo,
		Stripe:   stripeService,
	}
	escrowService := &services.EscrowService{
		Milestones: &milestoneRepo,
		Projects:   &projectRepo,
		Escrow:     &escrowRepo,
	}
	payoutService := &services.PayoutService{
		Balances: &balanceRepo,
		Payouts:  &payoutRepo,
	}
	messageService := &services.MessageService{MessageRepo: &messageRepo}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService, Notifications: notificationService}
	projectHandler := &handlers.ProjectHandler{Service: projectService}
	proposalHandler := &handlers.ProposalHandler{Service: proposalService}
	milestoneHandler := &handlers.MilestoneHandler{Service: milestoneService}
	paymentHandler := &handlers.PaymentHandler{Service: paymentService, Stripe: stripeService}
	escrowHandler := &handlers.EscrowHandler{Service: escrowService}
	payoutHandler := &handlers.PayoutHandler{Service: payoutService}
	messageHandler := &handlers.MessageHandler{Service: messageService}

	wsManager := NewWebSocketManager(messageService)

	return &application{
		errorLog:         errorLog,
		infoLog:          infoLog,
		userHandler:      userHandler,
		projectHandler:   projectHandler,
		proposalHandler:  proposalHandler,
		milestoneHandler: milestoneHandler,
		paymentHandler:   paymentHandler,
		escrowHandler:    escrowHandler,
		payoutHandler:    payoutHandler,
		messageHandler:   messageHandler,
		userRepo:         &userRepo,
		tokenManager:     tokenManager,
		wsManager:        wsManager,
		cfg:              cfg,
		db:               db,
	}
}

// newMessagingClient returns nil when Firebase credentials are absent, which
// downgrades notifications to logged no-ops.
func newMessagingClient(cfg config.Config, infoLog *log.Logger) *messaging.Client {
	if cfg.Firebase.CredentialsFile == "" {
		infoLog.Println("firebase credentials not configured, push notifications disabled")
		return nil
	}
	app, err := firebase.NewApp(context.Background(),
		nil, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	if err != nil {
		infoLog.Printf("firebase init failed, push notifications disabled: %v", err)
		return nil
	}
	client, err := app.Messaging(context.Background())
	if err != nil {
		infoLog.Printf("firebase messaging init failed, push notifications disabled: %v", err)
		return nil
	}
	return client
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}
