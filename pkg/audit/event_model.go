package audit

import "fmt"

// ModelEvent represents a model definition change
type ModelEvent struct {
	UserID       string
	ClientIP     string
	Model        string
	TableName    string
	Operation    string // "create", "publish", "load"
	Success      bool
	ErrorMessage string
}

func (e ModelEvent) MessageID() string {
	return "model"
}

func (e ModelEvent) Message() string {
	verb := e.Operation
	switch e.Operation {
	case "create":
		verb = "created"
	case "publish":
		verb = "published"
	case "load":
		verb = "loaded"
	}
	if e.Success {
		return fmt.Sprintf("%s %s model %s", e.UserID, verb, e.Model)
	}
	msg := fmt.Sprintf("%s tried to %s model %s", e.UserID, e.Operation, e.Model)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ModelEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e ModelEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ModelEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDModel: {
			"name": e.Model,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.TableName != "" {
		sd[SDIDModel]["table"] = e.TableName
	}
	return sd
}
