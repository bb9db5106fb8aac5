package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fittrack/fittrack-api/internal/config"
	"github.com/fittrack/fittrack-api/internal/infrastructure/dynamo"
	googleinfra "github.com/fittrack/fittrack-api/internal/infrastructure/google"
	jwtinfra "github.com/fittrack/fittrack-api/internal/infrastructure/jwt"
	s3infra "github.com/fittrack/fittrack-api/internal/infrastructure/s3"
	"github.com/fittrack/fittrack-api/internal/infrastructure/smtp"
	"github.com/fittrack/fittrack-api/internal/infrastructure/sns"
	transporthttp "github.com/fittrack/fittrack-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider is optional in development; auth routes degrade gracefully.
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store for profile and equipment images.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer for login codes.
	mailer := smtp.NewMailer(cfg)

	// SNS publisher for account-security events, optional.
	var events sns.EventPublisher
	if pub, err := sns.NewPublisher(cfg); err == nil {
		events = pub
	} else {
		log.Printf("WARN: SNS publisher not available: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.Verifications),
		WorkoutRepo:      dynamo.NewWorkoutRepo(dynamoClient, cfg.DynamoTables.Workouts),
		MealRepo:         dynamo.NewMealRepo(dynamoClient, cfg.DynamoTables.Meals),
		GoalRepo:         dynamo.NewGoalRepo(dynamoClient, cfg.DynamoTables.Goals),
		ProgramRepo:      dynamo.NewProgramRepo(dynamoClient, cfg.DynamoTables.Programs),
		EventRepo:        dynamo.NewEventRepo(dynamoClient, cfg.DynamoTables.CalendarEvents),
		ExerciseRepo:     dynamo.NewExerciseRepo(dynamoClient, cfg.DynamoTables.Exercises),
		PredictionRepo:   dynamo.NewPredictionRepo(dynamoClient, cfg.DynamoTables.Predictions),
		S3Store:          s3Store,
		Mailer:           mailer,
		Events:           events,
		JWTProvider:      jwtProvider,
		GoogleVerifier:   googleinfra.NewVerifier(cfg.GoogleClientID),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
