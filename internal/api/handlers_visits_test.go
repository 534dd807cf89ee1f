package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func createVisitTestPerson(t *testing.T, app *fiber.App, cookie string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/persons", cookie, map[string]any{"name": "Ana Silva"})
	expectStatus(t, response, http.StatusCreated)
	created := decodeMap(t, response)
	response.Body.Close()
	return created["id"].(string)
}

func TestRecordVisitFlow(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "visits@example.com")
	personID := createVisitTestPerson(t, app, cookie)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(time.RFC3339)
	recordResponse := doJSON(t, app, http.MethodPost, "/api/persons/"+personID+"/visits", cookie, map[string]any{
		"visitedAt": yesterday,
		"notes":     "left a tract",
	})
	expectStatus(t, recordResponse, http.StatusCreated)
	recorded := decodeMap(t, recordResponse)
	recordResponse.Body.Close()

	if recorded["visitCount"] != float64(1) {
		t.Fatalf("visitCount = %v, want 1", recorded["visitCount"])
	}

	listResponse := doJSON(t, app, http.MethodGet, "/api/persons/"+personID+"/visits", cookie, nil)
	expectStatus(t, listResponse, http.StatusOK)
	visits := decodeList(t, listResponse)
	listResponse.Body.Close()
	if len(visits) != 1 {
		t.Fatalf("len(visits) = %d, want 1", len(visits))
	}
	if visits[0]["notes"] != "left a tract" {
		t.Fatalf("notes = %v", visits[0]["notes"])
	}
}

func TestRecordVisitResponseListsNewestFirst(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "visits-order@example.com")
	personID := createVisitTestPerson(t, app, cookie)

	older := time.Now().UTC().AddDate(0, 0, -5).Format(time.RFC3339)
	newer := time.Now().UTC().AddDate(0, 0, -1).Format(time.RFC3339)

	first := doJSON(t, app, http.MethodPost, "/api/persons/"+personID+"/visits", cookie, map[string]any{
		"visitedAt": older,
	})
	expectStatus(t, first, http.StatusCreated)
	first.Body.Close()

	second := doJSON(t, app, http.MethodPost, "/api/persons/"+personID+"/visits", cookie, map[string]any{
		"visitedAt": newer,
	})
	expectStatus(t, second, http.StatusCreated)
	recorded := decodeMap(t, second)
	second.Body.Close()

	visits, ok := recorded["visits"].([]any)
	if !ok || len(visits) != 2 {
		t.Fatalf("visits = %v, want 2 entries", recorded["visits"])
	}
	if got := visits[0].(map[string]any)["visitedAt"]; got != newer {
		t.Fatalf("visits[0].visitedAt = %v, want %v", got, newer)
	}
	if got := visits[1].(map[string]any)["visitedAt"]; got != older {
		t.Fatalf("visits[1].visitedAt = %v, want %v", got, older)
	}
}

func TestRecordVisitRejectsDuplicateDay(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "visits-dup@example.com")
	personID := createVisitTestPerson(t, app, cookie)

	// Pin the hour so adding three hours cannot roll into the next UTC day.
	base := time.Now().UTC().AddDate(0, 0, -2)
	day := time.Date(base.Year(), base.Month(), base.Day(), 8, 0, 0, 0, time.UTC)
	first := doJSON(t, app, http.MethodPost, "/api/persons/"+personID+"/visits", cookie, map[string]any{
		"visitedAt": day.Format(time.RFC3339),
	})
	expectStatus(t, first, http.StatusCreated)
	first.Body.Close()

	// Different hour, same UTC day.
	second := doJSON(t, app, http.MethodPost, "/api/persons/"+personID+"/visits", cookie, map[string]any{
		"visitedAt": day.Add(3 * time.Hour).Format(time.RFC3339),
	})
	expectStatus(t, second, http.StatusConflict)
	body := decodeMap(t, second)
	second.Body.Close()
	want := "A visit is already recorded for " + day.Format("2006-01-02")
	if body["statusMessage"] != want {
		t.Fatalf("statusMessage = %v, want %q", body["statusMessage"], want)
	}
}

func TestRecordVisitRejectsOutOfWindowDates(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "visits-window@example.com")
	personID := createVisitTestPerson(t, app, cookie)

	futureResponse := doJSON(t, app, http.MethodPost, "/api/persons/"+personID+"/visits", cookie, map[string]any{
		"visitedAt": time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
	})
	expectStatus(t, futureResponse, http.StatusBadRequest)
	futureBody := decodeMap(t, futureResponse)
	futureResponse.Body.Close()
	if futureBody["statusMessage"] != "Cannot record visits for future dates" {
		t.Fatalf("statusMessage = %v", futureBody["statusMessage"])
	}

	staleResponse := doJSON(t, app, http.MethodPost, "/api/persons/"+personID+"/visits", cookie, map[string]any{
		"visitedAt": time.Now().UTC().AddDate(-1, 0, -1).Format(time.RFC3339),
	})
	expectStatus(t, staleResponse, http.StatusBadRequest)
	staleBody := decodeMap(t, staleResponse)
	staleResponse.Body.Close()
	if staleBody["statusMessage"] != "Cannot record visits older than 1 year" {
		t.Fatalf("statusMessage = %v", staleBody["statusMessage"])
	}
}

func TestUpdateVisitByFlatRoute(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "visits-update@example.com")
	personID := createVisitTestPerson(t, app, cookie)

	recordResponse := doJSON(t, app, http.MethodPost, "/api/persons/"+personID+"/visits", cookie, map[string]any{
		"visitedAt": time.Now().UTC().AddDate(0, 0, -3).Format(time.RFC3339),
	})
	expectStatus(t, recordResponse, http.StatusCreated)
	recorded := decodeMap(t, recordResponse)
	recordResponse.Body.Close()

	visits := recorded["visits"].([]any)
	visitID := visits[0].(map[string]any)["id"].(string)

	updateResponse := doJSON(t, app, http.MethodPut, "/api/visits/"+visitID, cookie, map[string]any{
		"visitedAt": time.Now().UTC().AddDate(0, 0, -5).Format(time.RFC3339),
		"notes":     "rescheduled",
	})
	expectStatus(t, updateResponse, http.StatusOK)
	updated := decodeMap(t, updateResponse)
	updateResponse.Body.Close()

	updatedVisits := updated["visits"].([]any)
	if len(updatedVisits) != 1 {
		t.Fatalf("len(visits) = %d, want 1", len(updatedVisits))
	}
	visit := updatedVisits[0].(map[string]any)
	if visit["id"] != visitID {
		t.Fatal("expected visit ID preserved across update")
	}
	if visit["notes"] != "rescheduled" {
		t.Fatalf("notes = %v", visit["notes"])
	}
}

func TestUpdateVisitUnknownIDIsNotFound(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "visits-missing@example.com")

	response := doJSON(t, app, http.MethodPut, "/api/visits/v-404", cookie, map[string]any{
		"visitedAt": time.Now().UTC().Format(time.RFC3339),
	})
	expectStatus(t, response, http.StatusNotFound)
	response.Body.Close()
}

func TestDeleteVisitFlatRouteSucceedsEvenWhenMissing(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "visits-delete@example.com")

	response := doJSON(t, app, http.MethodDelete, "/api/visits/v-404", cookie, nil)
	expectStatus(t, response, http.StatusOK)
	body := decodeMap(t, response)
	response.Body.Close()
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}
}

func TestDeleteVisitNestedRoute(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "visits-nested-delete@example.com")
	personID := createVisitTestPerson(t, app, cookie)

	recordResponse := doJSON(t, app, http.MethodPost, "/api/persons/"+personID+"/visits", cookie, map[string]any{
		"visitedAt": time.Now().UTC().AddDate(0, 0, -1).Format(time.RFC3339),
	})
	expectStatus(t, recordResponse, http.StatusCreated)
	recorded := decodeMap(t, recordResponse)
	recordResponse.Body.Close()
	visitID := recorded["visits"].([]any)[0].(map[string]any)["id"].(string)

	deleteResponse := doJSON(t, app, http.MethodDelete, "/api/persons/"+personID+"/visits/"+visitID, cookie, nil)
	expectStatus(t, deleteResponse, http.StatusOK)
	deleted := decodeMap(t, deleteResponse)
	deleteResponse.Body.Close()
	if deleted["visitCount"] != float64(0) {
		t.Fatalf("visitCount = %v, want 0", deleted["visitCount"])
	}

	missingResponse := doJSON(t, app, http.MethodDelete, "/api/persons/"+personID+"/visits/"+visitID, cookie, nil)
	expectStatus(t, missingResponse, http.StatusNotFound)
	missingResponse.Body.Close()
}
