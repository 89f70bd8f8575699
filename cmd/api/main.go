package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"drivn/internal/adapter/api"
	"drivn/internal/adapter/api/handler"
	apimiddleware "drivn/internal/adapter/api/middleware"
	"drivn/internal/adapter/api/router"
	"drivn/internal/adapter/repository"
	"drivn/internal/domain/entity"
	"drivn/internal/infrastructure/cache"
	"drivn/internal/infrastructure/firebase"
	"drivn/internal/infrastructure/realtime"
	"drivn/internal/infrastructure/storage"
	"drivn/internal/infrastructure/websocket"
	"drivn/internal/usecase"
	"drivn/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	credentialsPath := ""
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); credentialsPath != "" {
		log.Printf("Using Firebase service account from file: %s", credentialsPath)
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	fbAuth, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}
	authClient := firebase.NewAuthClient(fbAuth)

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	var storageClient *storage.CloudStorageClient
	if cfg.StorageBucket != "" {
		storageClient, err = storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
	}

	redisCache := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
	defer redisCache.Close()

	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	vehicleRepo := repository.NewFirestoreVehicleRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)

	messageFeed := realtime.NewFirestoreMessageFeed(firestoreClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	chatUseCase := usecase.NewChatUseCase(conversationRepo, messageRepo, vehicleRepo)
	vehicleUseCase := usecase.NewVehicleUseCase(vehicleRepo, storageClient)
	exploreUseCase := usecase.NewExploreUseCase(vehicleRepo, redisCache, houseAds())
	progressionUseCase := usecase.NewProgressionUseCase(userRepo)

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	handlers := router.Handlers{
		Chat:        handler.NewChatHandler(chatUseCase),
		Vehicle:     handler.NewVehicleHandler(vehicleUseCase),
		Explore:     handler.NewExploreHandler(exploreUseCase),
		Progression: handler.NewProgressionHandler(progressionUseCase),
		WebSocket:   handler.NewWebSocketHandler(wsManager, authClient, chatUseCase, messageFeed, cfg.ChatPollInterval),
		Health:      handler.NewHealthHandler(firestoreClient),
		DevToken:    handler.NewDevTokenHandler(authClient),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	router.Setup(e, handlers, authMiddleware, cfg.Environment)

	log.Printf("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// houseAds is the static ad inventory interleaved into the explore feed.
// TODO: load from Firestore once the ads collection is provisioned.
func houseAds() []entity.AdCard {
	return []entity.AdCard{
		{ID: "ad-detailing", Title: "Premium Detailing", ImageURL: "https://storage.googleapis.com/drivn-ads/detailing.jpg", LinkURL: "https://drivn.app/partners/detailing"},
		{ID: "ad-cover", Title: "Drivn Cover", ImageURL: "https://storage.googleapis.com/drivn-ads/cover.jpg", LinkURL: "https://drivn.app/cover"},
		{ID: "ad-meets", Title: "Cars & Coffee", ImageURL: "https://storage.googleapis.com/drivn-ads/meetup.jpg", LinkURL: "https://drivn.app/meets"},
	}
}
