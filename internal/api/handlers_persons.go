package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmswright/fieldlog/internal/realtime"
	"github.com/jmswright/fieldlog/internal/services"
)

func (handler *Handler) ListPersons(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	page, err := parsePageOptions(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	aggregates, err := handler.personService.ListPersons(user.ID, services.PersonListOptions{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	dtos := make([]fiber.Map, 0, len(aggregates))
	for _, aggregate := range aggregates {
		dtos = append(dtos, personDTO(aggregate))
	}
	return c.JSON(dtos)
}

func (handler *Handler) GetPerson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	aggregate, err := handler.personService.GetPerson(c.Params("id"), user.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(personWithVisitsDTO(aggregate))
}

func (handler *Handler) CreatePerson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	payload := personPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}

	aggregate, err := handler.personService.CreatePerson(user.ID, services.PersonInput{
		Name:    payload.Name,
		Address: payload.Address,
		Notes:   payload.Notes,
	}, time.Now().UTC())
	if err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TablePersons, realtime.ActionInsert, aggregate.Person.ID, user.ID)
	return c.Status(fiber.StatusCreated).JSON(personDTO(aggregate))
}

func (handler *Handler) UpdatePerson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	payload := personPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}

	aggregate, err := handler.personService.UpdatePerson(c.Params("id"), user.ID, services.PersonInput{
		Name:    payload.Name,
		Address: payload.Address,
		Notes:   payload.Notes,
	}, time.Now().UTC())
	if err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TablePersons, realtime.ActionUpdate, aggregate.Person.ID, user.ID)
	return c.JSON(personDTO(aggregate))
}

func (handler *Handler) DeletePerson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	personID := c.Params("id")
	if err := handler.personService.DeletePerson(personID, user.ID); err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TablePersons, realtime.ActionDelete, personID, user.ID)
	return sendSuccess(c)
}
