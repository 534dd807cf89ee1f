package api

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type personPayload struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

type visitPayload struct {
	VisitedAt string  `json:"visitedAt"`
	Notes     *string `json:"notes"`
}

type timePayload struct {
	Type       string `json:"type"`
	RecordedOn string `json:"recordedOn"`
	Hours      int    `json:"hours"`
	Minutes    int    `json:"minutes"`
}

type reportPayload struct {
	Month         int `json:"month"`
	Year          int `json:"year"`
	Studies       int `json:"studies"`
	MinistryHours int `json:"ministryHours"`
	CreditHours   int `json:"creditHours"`
}
