package audit

import "fmt"

// CheckEvent represents a permission decision on a model
type CheckEvent struct {
	UserID   string
	Role     string
	ClientIP string
	Model    string
	RecordID string
	Action   string
	Allowed  bool
	Reason   string
}

func (e CheckEvent) MessageID() string {
	return "check"
}

func (e CheckEvent) Message() string {
	target := e.Model
	if e.RecordID != "" {
		target = fmt.Sprintf("%s/%s", e.Model, e.RecordID)
	}
	if e.Allowed {
		return fmt.Sprintf("%s (%s) checked permission %s on %s: allowed", e.UserID, e.Role, e.Action, target)
	}
	msg := fmt.Sprintf("%s (%s) checked permission %s on %s: denied", e.UserID, e.Role, e.Action, target)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e CheckEvent) Severity() Severity {
	return SeverityInfo
}

func (e CheckEvent) Facility() int {
	return FacilityAuthPriv
}

func (e CheckEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
			"role": e.Role,
		},
		SDIDSubject: {
			"model":     e.Model,
			"privilege": e.Action,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "check",
			"result":    result(e.Allowed),
		},
	}
	if e.RecordID != "" {
		sd[SDIDSubject]["record"] = e.RecordID
	}
	return sd
}
