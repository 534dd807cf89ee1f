package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmswright/fieldlog/internal/realtime"
	"github.com/jmswright/fieldlog/internal/services"
)

func (handler *Handler) ListReports(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	page, err := parsePageOptions(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	month, year, hasPeriod, err := parseOptionalMonthYearQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	serviceYear, err := parseServiceYearQuery(c, false)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	options := services.ReportListOptions{
		ServiceYear: serviceYear,
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	if hasPeriod {
		options.Month = &services.MonthFilter{Month: month, Year: year}
	}

	reports, err := handler.reportService.ListReports(user.ID, options)
	if err != nil {
		return respondDomainError(c, err)
	}

	dtos := make([]fiber.Map, 0, len(reports))
	for _, report := range reports {
		dtos = append(dtos, reportDTO(report))
	}
	return c.JSON(dtos)
}

func (handler *Handler) GetReport(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	report, err := handler.reportService.GetReport(c.Params("id"), user.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(reportDTO(report))
}

func (handler *Handler) CreateReport(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	payload := reportPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}

	report, err := handler.reportService.CreateReport(user.ID, services.ReportInput{
		Month:         payload.Month,
		Year:          payload.Year,
		Studies:       payload.Studies,
		MinistryHours: payload.MinistryHours,
		CreditHours:   payload.CreditHours,
	}, time.Now().UTC())
	if err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TableReports, realtime.ActionInsert, report.ID, user.ID)
	return c.Status(fiber.StatusCreated).JSON(reportDTO(report))
}

func (handler *Handler) UpdateReport(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	payload := reportPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}

	report, err := handler.reportService.UpdateReport(c.Params("id"), user.ID, services.ReportInput{
		Month:         payload.Month,
		Year:          payload.Year,
		Studies:       payload.Studies,
		MinistryHours: payload.MinistryHours,
		CreditHours:   payload.CreditHours,
	}, time.Now().UTC())
	if err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TableReports, realtime.ActionUpdate, report.ID, user.ID)
	return c.JSON(reportDTO(report))
}

func (handler *Handler) DeleteReport(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	reportID := c.Params("id")
	if err := handler.reportService.DeleteReport(reportID, user.ID); err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TableReports, realtime.ActionDelete, reportID, user.ID)
	return sendSuccess(c)
}

// GetReportDefaults pre-fills a report form from the time entries logged in
// the requested month.
func (handler *Handler) GetReportDefaults(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	month, year, err := parseMonthYearQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	defaults, err := handler.reportService.GetReportDefaults(user.ID, month, year)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"ministryHours": defaults.MinistryHours,
		"creditHours":   defaults.CreditHours,
	})
}

func (handler *Handler) GetServiceYearSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	serviceYear, err := parseServiceYearQuery(c, true)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := handler.reportService.GetServiceYearSummary(user.ID, serviceYear)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(serviceYearSummaryDTO(summary))
}
