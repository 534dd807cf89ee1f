package realtime

// Actions mirror the change feed the web client already understands.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

const (
	TablePersons = "persons"
	TableVisits  = "visits"
	TableTimes   = "times"
	TableReports = "reports"
)

// Event describes one row-level change. UserID scopes delivery; the SSE
// layer strips it before the event reaches a client.
type Event struct {
	Table  string `json:"table"`
	Action string `json:"action"`
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

type Publisher interface {
	Publish(event Event)
}
