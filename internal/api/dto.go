package api

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmswright/fieldlog/internal/models"
	"github.com/jmswright/fieldlog/internal/services"
)

func timestampDTO(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}

func userDTO(user *models.User) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"email":     user.Email,
		"createdAt": timestampDTO(user.CreatedAt),
	}
}

func personDTO(aggregate services.PersonWithVisits) fiber.Map {
	person := aggregate.Person
	return fiber.Map{
		"id":         person.ID,
		"name":       person.Name,
		"address":    person.Address,
		"notes":      person.Notes,
		"createdAt":  timestampDTO(person.CreatedAt),
		"updatedAt":  timestampDTO(person.UpdatedAt),
		"visitCount": aggregate.VisitCount(),
	}
}

func personWithVisitsDTO(aggregate services.PersonWithVisits) fiber.Map {
	dto := personDTO(aggregate)
	dto["visits"] = visitsDTO(aggregate.Visits)
	return dto
}

func visitDTO(visit models.Visit) fiber.Map {
	return fiber.Map{
		"id":        visit.ID,
		"personId":  visit.PersonID,
		"visitedAt": timestampDTO(visit.VisitedAt),
		"notes":     visit.Notes,
		"createdAt": timestampDTO(visit.CreatedAt),
	}
}

// visitsDTO serializes visits newest first regardless of the order the
// caller holds them in; reads come back from the store already sorted, but
// mutation responses carry the aggregate's insertion order.
func visitsDTO(visits []models.Visit) []fiber.Map {
	ordered := make([]models.Visit, len(visits))
	copy(ordered, visits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].VisitedAt.After(ordered[j].VisitedAt)
	})

	dtos := make([]fiber.Map, 0, len(ordered))
	for _, visit := range ordered {
		dtos = append(dtos, visitDTO(visit))
	}
	return dtos
}

func timeEntryDTO(entry models.TimeEntry) fiber.Map {
	return fiber.Map{
		"id":           entry.ID,
		"type":         entry.Type,
		"recordedOn":   entry.RecordedOn.UTC().Format("2006-01-02"),
		"hours":        entry.Hours,
		"minutes":      entry.Minutes,
		"totalMinutes": entry.TotalMinutes(),
		"totalHours":   entry.TotalHours(),
		"createdAt":    timestampDTO(entry.CreatedAt),
		"updatedAt":    timestampDTO(entry.UpdatedAt),
	}
}

func reportDTO(report models.Report) fiber.Map {
	return fiber.Map{
		"id":            report.ID,
		"month":         report.Month,
		"year":          report.Year,
		"studies":       report.Studies,
		"ministryHours": report.MinistryHours,
		"creditHours":   report.CreditHours,
		"totalHours":    report.TotalHours(),
		"periodKey":     report.PeriodKey(),
		"createdAt":     timestampDTO(report.CreatedAt),
		"updatedAt":     timestampDTO(report.UpdatedAt),
	}
}

func serviceYearSummaryDTO(summary services.ServiceYearSummary) fiber.Map {
	reports := make([]fiber.Map, 0, len(summary.Reports))
	for _, report := range summary.Reports {
		reports = append(reports, reportDTO(report))
	}
	return fiber.Map{
		"totalStudies":           summary.TotalStudies,
		"totalMinistryHours":     summary.TotalMinistryHours,
		"totalCreditHours":       summary.TotalCreditHours,
		"totalHours":             summary.TotalHours,
		"monthsReported":         summary.MonthsReported,
		"averageStudiesPerMonth": summary.AverageStudiesPerMonth,
		"averageHoursPerMonth":   summary.AverageHoursPerMonth,
		"reports":                reports,
	}
}
