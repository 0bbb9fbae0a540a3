package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"

	"lueurstudio/internal/api"
	"lueurstudio/internal/app"
	"lueurstudio/internal/auth"
	"lueurstudio/internal/config"
	"lueurstudio/internal/repository"
	"lueurstudio/internal/service"
	"lueurstudio/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()
	sugar := logger.Sugar()

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		sugar.Fatalw("opening record store", "path", cfg.DatabasePath, "error", err)
	}
	defer st.Close()

	bookingRepo := repository.NewBookingRepository(st)
	overrideRepo := repository.NewOverrideRepository(st)
	testimonialRepo := repository.NewTestimonialRepository(st)
	projectRepo := repository.NewProjectRepository(st)

	notifier := service.NewSendGridNotifier(cfg.SendgridAPIKey, cfg.SendgridFromEmail, cfg.SendgridFromName, sugar)
	sender := service.NewSenderService(cfg.StudioName)
	bookingSvc := service.NewBookingService(bookingRepo, overrideRepo, sender, notifier, sugar)
	availabilitySvc := service.NewAvailabilityService(overrideRepo)
	testimonialSvc := service.NewTestimonialService(testimonialRepo)
	authSvc := service.NewAdminAuthService(cfg.AdminPasswordHash, cfg.JWTSecret)
	jobSvc := service.NewJobService(bookingRepo, sender, notifier, sugar)

	userHandler := api.NewUserBookingHandler(bookingSvc, cfg.UploadDir)
	adminHandler := api.NewAdminBookingHandler(bookingSvc, availabilitySvc, cfg.GalleryBaseURL)
	authHandler := api.NewAdminAuthHandler(authSvc, cfg.Environment == "production")
	testimonialHandler := api.NewTestimonialHandler(testimonialSvc)
	projectHandler := api.NewProjectHandler(projectRepo)
	uploadHandler := api.NewUploadHandler(cfg.UploadDir)
	imageHandler := api.NewImageHandler(cfg.UploadDir, cfg.StudioName, sugar)

	c := cron.New()
	if _, err := c.AddFunc("0 8 * * *", func() {
		if err := jobSvc.SendUpcomingReminders(); err != nil {
			sugar.Errorw("reminder job failed", "error", err)
		}
	}); err != nil {
		sugar.Fatalw("scheduling reminder job", "error", err)
	}
	c.Start()
	defer c.Stop()

	r := mux.NewRouter()
	r.Use(auth.RequestID)

	// Public endpoints
	r.HandleFunc("/api/availability/check", userHandler.CheckDate).Methods("GET")
	r.HandleFunc("/api/availability/public", adminHandler.ListOverrides).Methods("GET")
	r.HandleFunc("/api/availability/range", userHandler.AvailableDates).Methods("GET")
	r.HandleFunc("/api/reservations/check-time", userHandler.CheckSlot).Methods("POST")
	r.HandleFunc("/api/reservations/booked-times", userHandler.BookedTimes).Methods("GET")
	r.HandleFunc("/api/reservations", userHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/gallery/verify", userHandler.VerifyGallery).Methods("GET")
	r.HandleFunc("/api/testimonials", testimonialHandler.ListPublic).Methods("GET")
	r.HandleFunc("/api/testimonials", testimonialHandler.Add).Methods("POST")
	r.HandleFunc("/api/testimonials/verify", testimonialHandler.VerifyCode).Methods("POST")
	r.HandleFunc("/api/projects", projectHandler.List).Methods("GET")
	r.HandleFunc("/api/projects/{slug}", projectHandler.BySlug).Methods("GET")
	r.HandleFunc("/api/images/{filename}", imageHandler.Serve).Methods("GET")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminMiddleware(cfg.JWTSecret))
	admin.HandleFunc("/reservations", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/reservations/{id}", adminHandler.GetBooking).Methods("GET")
	admin.HandleFunc("/reservations/{id}", adminHandler.UpdateBooking).Methods("PUT")
	admin.HandleFunc("/reservations/{id}", adminHandler.DeleteBooking).Methods("DELETE")
	admin.HandleFunc("/reservations/{id}/gallery", adminHandler.DispatchGallery).Methods("POST")
	admin.HandleFunc("/reservations/{id}/photos", adminHandler.UpdateGalleryPhotos).Methods("PUT")
	admin.HandleFunc("/availability", adminHandler.ListOverrides).Methods("GET")
	admin.HandleFunc("/availability", adminHandler.UpdateOverrides).Methods("POST")
	admin.HandleFunc("/testimonials", testimonialHandler.ListAll).Methods("GET")
	admin.HandleFunc("/testimonials", testimonialHandler.AddAdmin).Methods("POST")
	admin.HandleFunc("/testimonials/{id}/approve", testimonialHandler.SetApproved).Methods("POST")
	admin.HandleFunc("/testimonials/{id}", testimonialHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/testimonials/codes", testimonialHandler.Codes).Methods("GET")
	admin.HandleFunc("/testimonials/codes", testimonialHandler.UpdateCode).Methods("POST")
	admin.HandleFunc("/projects", projectHandler.Create).Methods("POST")
	admin.HandleFunc("/projects/{slug}", projectHandler.Update).Methods("PUT")
	admin.HandleFunc("/projects/{slug}", projectHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/upload", uploadHandler.Upload).Methods("POST")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	sugar.Infow("server starting", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, cors(handlers.LoggingHandler(os.Stdout, r))); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}
