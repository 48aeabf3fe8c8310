package main

import (
	"context"

	appointmenthandler "docportal/internal/appointments/handler"
	appointmentrepo "docportal/internal/appointments/repository"
	appointmentservice "docportal/internal/appointments/service"
	"docportal/internal/auth"
	bookinghandler "docportal/internal/bookings/handler"
	bookingrepo "docportal/internal/bookings/repository"
	bookingservice "docportal/internal/bookings/service"
	bookingvalidator "docportal/internal/bookings/validator"
	doctorhandler "docportal/internal/doctors/handler"
	doctorrepo "docportal/internal/doctors/repository"
	doctorservice "docportal/internal/doctors/service"
	doctorvalidator "docportal/internal/doctors/validator"
	healthhandler "docportal/internal/health/handler"
	paymentgateway "docportal/internal/payments/gateway"
	paymenthandler "docportal/internal/payments/handler"
	paymentrepo "docportal/internal/payments/repository"
	paymentservice "docportal/internal/payments/service"
	userhandler "docportal/internal/users/handler"
	userrepo "docportal/internal/users/repository"
	userservice "docportal/internal/users/service"
	"docportal/pkg/app"
	"docportal/pkg/config"
	"docportal/pkg/events"
)

const ServiceName = "doctors-portal"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting doctors portal server")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err)
		}
	}()

	// Repositories
	optionRepo := appointmentrepo.NewMongoAppointmentOptionRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	userRepo := userrepo.NewMongoUserRepository(cfg)
	doctorRepo := doctorrepo.NewMongoDoctorRepository(cfg)
	payRepo := paymentrepo.NewMongoPaymentRepository(cfg)

	if err := bookingRepo.EnsureIndexes(context.Background()); err != nil {
		cfg.Log.Fatal("Failed to ensure booking indexes", "error", err)
	}

	// Services
	userService := userservice.NewUserService(userRepo, cfg)
	appointmentService := appointmentservice.NewAppointmentService(optionRepo, bookingRepo, cfg)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	doctorService := doctorservice.NewDoctorService(
		doctorRepo,
		doctorvalidator.NewDoctorValidator(cfg.Log),
		cfg,
	)
	paymentService := paymentservice.NewPaymentService(
		payRepo,
		bookingRepo,
		paymentgateway.NewStripeGateway(cfg.StripeSecretKey),
		publisher,
		cfg,
	)

	// Auth
	tokens := auth.NewTokenService(cfg.AccessTokenSecret, cfg.AccessTokenTTL)
	guard := auth.NewGuard(tokens, userService, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		healthhandler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
		auth.NewHandler(tokens, cfg.Log),
		appointmenthandler.NewAppointmentHandler(appointmentService, guard, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, guard, cfg.Log),
		userhandler.NewUserHandler(userService, guard, cfg.Log),
		doctorhandler.NewDoctorHandler(doctorService, guard, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentService, guard, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured; events disabled")
		return events.NoopPublisher{}
	}

	cfg.Log.Info("Event publisher configured",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.KafkaTopic,
	)
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, ServiceName, cfg.Log)
}
