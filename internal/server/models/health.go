package models

// Status is the outcome of a single dependency probe.
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "Fail"
)

// StatusOf maps a probe result to a Status.
func StatusOf(ok bool) Status {
	if ok {
		return StatusOK
	}
	return StatusFail
}

// HealthStatus reports each dependency independently; there is deliberately
// no combined field.
type HealthStatus struct {
	Vault Status `json:"vault"`
	DB    Status `json:"db"`
}
