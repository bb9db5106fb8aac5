package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/fittrack/fittrack-api/internal/application/auth"
	"github.com/fittrack/fittrack-api/internal/application/calendar"
	"github.com/fittrack/fittrack-api/internal/application/dashboard"
	"github.com/fittrack/fittrack-api/internal/application/exercise"
	"github.com/fittrack/fittrack-api/internal/application/goal"
	"github.com/fittrack/fittrack-api/internal/application/meal"
	"github.com/fittrack/fittrack-api/internal/application/ml"
	"github.com/fittrack/fittrack-api/internal/application/program"
	"github.com/fittrack/fittrack-api/internal/application/user"
	"github.com/fittrack/fittrack-api/internal/application/workout"
	"github.com/fittrack/fittrack-api/internal/config"
	"github.com/fittrack/fittrack-api/internal/infrastructure/dynamo"
	googleinfra "github.com/fittrack/fittrack-api/internal/infrastructure/google"
	jwtinfra "github.com/fittrack/fittrack-api/internal/infrastructure/jwt"
	s3infra "github.com/fittrack/fittrack-api/internal/infrastructure/s3"
	"github.com/fittrack/fittrack-api/internal/infrastructure/smtp"
	"github.com/fittrack/fittrack-api/internal/infrastructure/sns"
	"github.com/fittrack/fittrack-api/internal/transport/http/handler"
	appmiddleware "github.com/fittrack/fittrack-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	VerificationRepo *dynamo.VerificationRepo
	WorkoutRepo      *dynamo.WorkoutRepo
	MealRepo         *dynamo.MealRepo
	GoalRepo         *dynamo.GoalRepo
	ProgramRepo      *dynamo.ProgramRepo
	EventRepo        *dynamo.EventRepo
	ExerciseRepo     *dynamo.ExerciseRepo
	PredictionRepo   *dynamo.PredictionRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	Events           sns.EventPublisher
	JWTProvider      *jwtinfra.Provider
	GoogleVerifier   *googleinfra.Verifier
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10, applied to the public auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:         deps.UserRepo,
		VerificationRepo: deps.VerificationRepo,
		Mailer:           deps.Mailer,
		JWTProvider:      deps.JWTProvider,
		GoogleVerifier:   deps.GoogleVerifier,
		Events:           deps.Events,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:    deps.UserRepo,
		ImageStore:  deps.S3Store,
		WorkoutRepo: deps.WorkoutRepo,
		MealRepo:    deps.MealRepo,
		GoalRepo:    deps.GoalRepo,
	})
	workoutSvc := workout.NewService(workout.ServiceDeps{
		WorkoutRepo:  deps.WorkoutRepo,
		ExerciseRepo: deps.ExerciseRepo,
		EventRepo:    deps.EventRepo,
	})
	mealSvc := meal.NewService(deps.MealRepo)
	goalSvc := goal.NewService(deps.GoalRepo)
	programSvc := program.NewService(program.ServiceDeps{
		ProgramRepo: deps.ProgramRepo,
		GoalRepo:    deps.GoalRepo,
	})
	calendarSvc := calendar.NewService(deps.EventRepo)
	exerciseSvc := exercise.NewService(deps.ExerciseRepo)
	mlSvc := ml.NewService(ml.ServiceDeps{
		PredictionRepo: deps.PredictionRepo,
		ExerciseRepo:   deps.ExerciseRepo,
		ImageStore:     deps.S3Store,
	})
	dashboardSvc := dashboard.NewService(dashboard.ServiceDeps{
		WorkoutRepo: deps.WorkoutRepo,
		MealRepo:    deps.MealRepo,
		GoalRepo:    deps.GoalRepo,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	workoutH := handler.NewWorkoutHandler(workoutSvc)
	mealH := handler.NewMealHandler(mealSvc)
	goalH := handler.NewGoalHandler(goalSvc)
	programH := handler.NewProgramHandler(programSvc)
	calendarH := handler.NewCalendarHandler(calendarSvc)
	exerciseH := handler.NewExerciseHandler(exerciseSvc)
	mlH := handler.NewMLHandler(mlSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/verify", authH.VerifyLogin)
		r.With(sensitiveRL.Limit).Post("/auth/resend", authH.Resend)
		r.With(sensitiveRL.Limit).Post("/auth/google", authH.GoogleLogin)
		r.Post("/auth/refresh", authH.Refresh)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/auth/change-password", authH.ChangePassword)
			r.Post("/auth/link-google", authH.LinkGoogle)

			// Shared exercise catalog
			r.Get("/exercises", exerciseH.List)
			r.Post("/exercises", exerciseH.Create)
			r.Get("/exercises/{exerciseID}", exerciseH.Get)

			// User-scoped resources: the path owner must be the caller.
			r.Route("/users/{userID}", func(r chi.Router) {
				r.Use(appmiddleware.RequireOwner)

				r.Get("/", userH.Get)
				r.Put("/", userH.Update)
				r.Delete("/", userH.Delete)
				r.Put("/profile-image", userH.SetProfileImage)
				r.Get("/stats", userH.Stats)

				r.Post("/workouts", workoutH.Create)
				r.Get("/workouts", workoutH.List)
				r.Get("/workouts/recent", workoutH.Recent)
				r.Get("/workouts/{workoutID}", workoutH.Get)
				r.Put("/workouts/{workoutID}", workoutH.Update)
				r.Delete("/workouts/{workoutID}", workoutH.Delete)
				r.Post("/workouts/{workoutID}/exercises", workoutH.AddExercise)
				r.Put("/workouts/{workoutID}/exercises/{entryID}", workoutH.UpdateExercise)
				r.Delete("/workouts/{workoutID}/exercises/{entryID}", workoutH.RemoveExercise)
				r.Post("/workouts/{workoutID}/complete", workoutH.Complete)

				r.Post("/meals", mealH.Create)
				r.Get("/meals", mealH.List)
				r.Get("/meals/summary", mealH.Summary)
				r.Get("/meals/{mealID}", mealH.Get)
				r.Put("/meals/{mealID}", mealH.Update)
				r.Delete("/meals/{mealID}", mealH.Delete)
				r.Post("/meals/{mealID}/items", mealH.AddItem)
				r.Delete("/meals/{mealID}/items/{itemID}", mealH.RemoveItem)

				r.Post("/goals", goalH.Create)
				r.Get("/goals", goalH.List)
				r.Get("/goals/{goalID}", goalH.Get)
				r.Put("/goals/{goalID}", goalH.Update)
				r.Delete("/goals/{goalID}", goalH.Delete)

				r.Post("/programs", programH.Create)
				r.Get("/programs", programH.List)
				r.Get("/programs/{programID}", programH.Get)
				r.Delete("/programs/{programID}", programH.Delete)

				r.Post("/calendar", calendarH.Create)
				r.Get("/calendar", calendarH.List)
				r.Delete("/calendar/{eventID}", calendarH.Delete)

				r.Post("/predictions", mlH.Identify)
				r.Get("/predictions", mlH.History)

				r.Get("/dashboard", dashboardH.Summary)
			})
		})
	})

	return r
}
