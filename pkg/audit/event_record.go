package audit

import "fmt"

// RecordEvent represents a create, update or delete of a record
type RecordEvent struct {
	UserID       string
	ClientIP     string
	Model        string
	RecordID     string
	Operation    string // "create", "update", "delete"
	Success      bool
	ErrorMessage string
}

func (e RecordEvent) MessageID() string {
	return "record"
}

func (e RecordEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %sd %s/%s", e.UserID, e.Operation, e.Model, e.RecordID)
	}
	msg := fmt.Sprintf("%s tried to %s %s/%s", e.UserID, e.Operation, e.Model, e.RecordID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RecordEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RecordEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RecordEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"model":  e.Model,
			"record": e.RecordID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
}
