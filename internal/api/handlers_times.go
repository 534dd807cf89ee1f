package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmswright/fieldlog/internal/realtime"
	"github.com/jmswright/fieldlog/internal/services"
)

func (handler *Handler) ListTimeEntries(c *fiber.Ctx) error {
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

	options := services.TimeListOptions{
		Types:       parseTypeFilters(c),
		ServiceYear: serviceYear,
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	if hasPeriod {
		options.Month = &services.MonthFilter{Month: month, Year: year}
	}

	entries, err := handler.timeService.ListEntries(user.ID, options)
	if err != nil {
		return respondDomainError(c, err)
	}

	dtos := make([]fiber.Map, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, timeEntryDTO(entry))
	}
	return c.JSON(dtos)
}

func (handler *Handler) GetTimeEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	entry, err := handler.timeService.GetEntry(c.Params("id"), user.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(timeEntryDTO(entry))
}

func (handler *Handler) CreateTimeEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	input, err := handler.parseTimeInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	entry, err := handler.timeService.CreateEntry(user.ID, input, time.Now().UTC())
	if err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TableTimes, realtime.ActionInsert, entry.ID, user.ID)
	return c.Status(fiber.StatusCreated).JSON(timeEntryDTO(entry))
}

func (handler *Handler) UpdateTimeEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	input, err := handler.parseTimeInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	entry, err := handler.timeService.UpdateEntry(c.Params("id"), user.ID, input, time.Now().UTC())
	if err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TableTimes, realtime.ActionUpdate, entry.ID, user.ID)
	return c.JSON(timeEntryDTO(entry))
}

func (handler *Handler) DeleteTimeEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	timeID := c.Params("id")
	if err := handler.timeService.DeleteEntry(timeID, user.ID); err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TableTimes, realtime.ActionDelete, timeID, user.ID)
	return sendSuccess(c)
}

func (handler *Handler) ListTimeTypes(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	types, err := handler.timeService.ListTypes(user.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"types": types})
}

func (handler *Handler) parseTimeInput(c *fiber.Ctx) (services.TimeEntryInput, error) {
	payload := timePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return services.TimeEntryInput{}, errInvalidInput
	}
	recordedOn, err := parseRecordedOn(payload.RecordedOn)
	if err != nil {
		return services.TimeEntryInput{}, err
	}
	return services.TimeEntryInput{
		Type:       payload.Type,
		RecordedOn: recordedOn,
		Hours:      payload.Hours,
		Minutes:    payload.Minutes,
	}, nil
}
