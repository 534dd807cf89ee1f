package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	persons := api.Group("/persons", handler.AuthRequired)
	persons.Get("", handler.ListPersons)
	persons.Post("", handler.CreatePerson)
	persons.Get("/:id", handler.GetPerson)
	persons.Put("/:id", handler.UpdatePerson)
	persons.Delete("/:id", handler.DeletePerson)
	persons.Get("/:id/visits", handler.ListVisits)
	persons.Post("/:id/visits", handler.RecordVisit)
	persons.Delete("/:id/visits/:visitId", handler.DeletePersonVisit)

	visits := api.Group("/visits", handler.AuthRequired)
	visits.Put("/:id", handler.UpdateVisit)
	visits.Delete("/:id", handler.DeleteVisit)

	times := api.Group("/times", handler.AuthRequired)
	times.Get("", handler.ListTimeEntries)
	times.Post("", handler.CreateTimeEntry)
	times.Get("/:id", handler.GetTimeEntry)
	times.Put("/:id", handler.UpdateTimeEntry)
	times.Delete("/:id", handler.DeleteTimeEntry)

	api.Get("/time-types", handler.AuthRequired, handler.ListTimeTypes)

	reports := api.Group("/reports", handler.AuthRequired)
	reports.Get("", handler.ListReports)
	reports.Post("", handler.CreateReport)
	reports.Get("/defaults", handler.GetReportDefaults)
	reports.Get("/service-year-summary", handler.GetServiceYearSummary)
	reports.Get("/:id", handler.GetReport)
	reports.Put("/:id", handler.UpdateReport)
	reports.Delete("/:id", handler.DeleteReport)

	api.Get("/events", handler.AuthRequired, handler.StreamEvents)
}
