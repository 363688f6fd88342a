// Package audit provides audit logging for autocrud operations.
//
// Security relevant operations (logins, permission decisions, record
// mutations, model creation and publishing) are written as RFC5424 syslog
// lines to stdout and, when AUDIT_DATABASE_URL is set, to the messages
// table.
//
// # Event Types
//
//   - LoginEvent: password login attempts
//   - CheckEvent: permission decisions on a model or record
//   - RecordEvent: record create, update and delete
//   - ModelEvent: model create, publish and load
//
// # Usage
//
//	audit.Log(audit.RecordEvent{
//	    UserID:    principal.ID,
//	    Model:     "Book",
//	    RecordID:  rec.ID,
//	    Operation: "create",
//	    Success:   true,
//	})
//
// Logging is on by default and can be switched off with
// AUTOCRUD_AUDIT_ENABLED=false.
package audit
