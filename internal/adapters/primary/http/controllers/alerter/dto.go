package alerter

// AlertPayload внешний алерт в свободной форме (Alertmanager, CI и т.п.)
type AlertPayload struct {
	Message  string `json:"message" binding:"required"`
	Source   string `json:"source"`
	Severity string `json:"severity"`
}
