package usecase

import (
	"time"

	"airops-service/internal/domain/repository"
	"airops-service/pkg/logger"
	"airops-service/pkg/metrics"
)

// CommandDeps are the collaborators of the terminal command handlers
type CommandDeps struct {
	Flights    repository.FlightRepository
	Passengers repository.PassengerRepository
	SentEmails repository.SentEmailRepository
	Logs       repository.LogRepository
	Dispatcher *EmailDispatcher
	Metrics    *metrics.Metrics
	Logger     logger.Logger
	BagDelay   time.Duration
}

// RegisterCommands registers the full reservation terminal grammar on router
func RegisterCommands(router CommandRouter, deps CommandDeps) {
	reader := NewBookingReader(deps.Passengers, deps.Flights)

	router.Register(NewAvailabilityHandler(deps.Flights))
	router.Register(NewElementHandler())
	router.Register(NewServiceHandler())
	router.Register(NewPricingHandler())
	router.Register(NewTicketingHandler())
	router.Register(NewReservationHandler(deps.Passengers, reader, deps.Dispatcher, deps.Logs, deps.Metrics, deps.Logger.Named("reservation"), deps.BagDelay))
	router.Register(NewEmailCommandHandler(reader, deps.SentEmails, deps.Dispatcher, deps.Logger.Named("email")))
	router.Register(NewSessionHandler(router))
}
