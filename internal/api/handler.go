package api

import (
	"github.com/jmswright/fieldlog/internal/db"
	"github.com/jmswright/fieldlog/internal/realtime"
	"github.com/jmswright/fieldlog/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db            *gorm.DB
	secretKey     []byte
	cookieSecure  bool
	repositories  *db.Repositories
	authService   *services.AuthService
	personService *services.PersonService
	timeService   *services.TimeService
	reportService *services.ReportService
	hub           *realtime.Hub
	events        realtime.Publisher
}

// NewHandler wires repositories and services around one database handle.
// The publisher may differ from the hub when a Redis bridge is configured.
func NewHandler(database *gorm.DB, secretKey string, hub *realtime.Hub, events realtime.Publisher) *Handler {
	repositories := db.NewRepositories(database)
	if events == nil {
		events = hub
	}
	return &Handler{
		db:            database,
		secretKey:     []byte(secretKey),
		repositories:  repositories,
		authService:   services.NewAuthService(repositories.Users),
		personService: services.NewPersonService(repositories.Persons),
		timeService:   services.NewTimeService(repositories.Times),
		reportService: services.NewReportService(repositories.Reports, repositories.Times),
		hub:           hub,
		events:        events,
	}
}

// WithCookieSecure marks session cookies Secure for TLS deployments.
func (handler *Handler) WithCookieSecure(secure bool) *Handler {
	handler.cookieSecure = secure
	return handler
}

func (handler *Handler) publish(table string, action string, id string, userID string) {
	if handler.events == nil {
		return
	}
	handler.events.Publish(realtime.Event{Table: table, Action: action, ID: id, UserID: userID})
}
