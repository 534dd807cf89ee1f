package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmswright/fieldlog/internal/realtime"
	"github.com/jmswright/fieldlog/internal/services"
)

func (handler *Handler) ListVisits(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	aggregate, err := handler.personService.GetPerson(c.Params("id"), user.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(visitsDTO(aggregate.Visits))
}

func (handler *Handler) RecordVisit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	payload := visitPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}
	visitedAt, err := parseVisitTimestamp(payload.VisitedAt)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	personID := c.Params("id")
	aggregate, err := handler.personService.RecordVisit(personID, user.ID, services.VisitInput{
		VisitedAt: visitedAt,
		Notes:     payload.Notes,
	}, time.Now().UTC())
	if err != nil {
		return respondDomainError(c, err)
	}

	created := aggregate.Visits[len(aggregate.Visits)-1]
	handler.publish(realtime.TableVisits, realtime.ActionInsert, created.ID, user.ID)
	handler.publish(realtime.TablePersons, realtime.ActionUpdate, personID, user.ID)
	return c.Status(fiber.StatusCreated).JSON(personWithVisitsDTO(aggregate))
}

func (handler *Handler) UpdateVisit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	payload := visitPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}
	visitedAt, err := parseVisitTimestamp(payload.VisitedAt)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	visitID := c.Params("id")
	aggregate, err := handler.personService.UpdateVisitByID(visitID, user.ID, services.VisitInput{
		VisitedAt: visitedAt,
		Notes:     payload.Notes,
	}, time.Now().UTC())
	if err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TableVisits, realtime.ActionUpdate, visitID, user.ID)
	handler.publish(realtime.TablePersons, realtime.ActionUpdate, aggregate.Person.ID, user.ID)
	return c.JSON(personWithVisitsDTO(aggregate))
}

func (handler *Handler) DeleteVisit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	visitID := c.Params("id")
	if err := handler.personService.DeleteVisitByID(visitID, user.ID); err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TableVisits, realtime.ActionDelete, visitID, user.ID)
	return sendSuccess(c)
}

func (handler *Handler) DeletePersonVisit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	personID := c.Params("id")
	visitID := c.Params("visitId")
	aggregate, err := handler.personService.DeleteVisit(personID, visitID, user.ID, time.Now().UTC())
	if err != nil {
		return respondDomainError(c, err)
	}

	handler.publish(realtime.TableVisits, realtime.ActionDelete, visitID, user.ID)
	handler.publish(realtime.TablePersons, realtime.ActionUpdate, aggregate.Person.ID, user.ID)
	return c.JSON(personWithVisitsDTO(aggregate))
}
