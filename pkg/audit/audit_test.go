package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := LoginEvent{
		Email:    "admin@example.com",
		UserID:   "user-1",
		ClientIP: "192.168.1.1",
		Success:  true,
	}

	logger.Log(event)

	output := buf.String()

	if !strings.HasPrefix(output, "<86>1 ") {
		t.Errorf("Expected PRI 86 (authpriv.info), got %q", output)
	}
	if !strings.Contains(output, "autocrud") {
		t.Error("Expected app name 'autocrud' in output")
	}
	if !strings.Contains(output, " login ") {
		t.Error("Expected message ID 'login' in output")
	}
	if !strings.Contains(output, "admin@example.com") {
		t.Error("Expected email in output")
	}
	if !strings.Contains(output, "192.168.1.1") {
		t.Error("Expected client IP in output")
	}
	if !strings.Contains(output, "successfully logged in") {
		t.Error("Expected success message in output")
	}
}

func TestLoginEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   LoginEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name:    "successful login",
			event:   LoginEvent{Email: "admin@example.com", UserID: "user-1", Success: true},
			wantMsg: "successfully logged in",
			wantSev: SeverityInfo,
		},
		{
			name:    "failed login",
			event:   LoginEvent{Email: "admin@example.com", Success: false, ErrorMessage: "invalid credentials"},
			wantMsg: "failed to log in: invalid credentials",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != "login" {
				t.Errorf("MessageID() = %v, want 'login'", tt.event.MessageID())
			}
		})
	}
}

func TestCheckEvent(t *testing.T) {
	tests := []struct {
		name       string
		event      CheckEvent
		wantMsg    string
		wantResult string
	}{
		{
			name:       "allowed on model",
			event:      CheckEvent{UserID: "user-1", Role: "Viewer", Model: "Book", Action: "read", Allowed: true},
			wantMsg:    "checked permission read on Book: allowed",
			wantResult: "success",
		},
		{
			name:       "denied on record",
			event:      CheckEvent{UserID: "user-1", Role: "Manager", Model: "Book", RecordID: "01H", Action: "delete", Reason: "not owner"},
			wantMsg:    "checked permission delete on Book/01H: denied: not owner",
			wantResult: "failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			sd := tt.event.StructuredData()
			if sd[SDIDAction]["result"] != tt.wantResult {
				t.Errorf("StructuredData action.result = %v, want %v", sd[SDIDAction]["result"], tt.wantResult)
			}
		})
	}
}

func TestRecordEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   RecordEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name:    "create",
			event:   RecordEvent{UserID: "user-1", Model: "Book", RecordID: "01H", Operation: "create", Success: true},
			wantMsg: "user-1 created Book/01H",
			wantSev: SeverityInfo,
		},
		{
			name:    "update",
			event:   RecordEvent{UserID: "user-1", Model: "Book", RecordID: "01H", Operation: "update", Success: true},
			wantMsg: "user-1 updated Book/01H",
			wantSev: SeverityInfo,
		},
		{
			name:    "failed delete",
			event:   RecordEvent{UserID: "user-1", Model: "Book", RecordID: "01H", Operation: "delete", ErrorMessage: "not found"},
			wantMsg: "user-1 tried to delete Book/01H: not found",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.Message() != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
		})
	}
}

func TestModelEvent(t *testing.T) {
	event := ModelEvent{UserID: "admin-1", Model: "Book", TableName: "books", Operation: "create", Success: true}

	if event.Message() != "admin-1 created model Book" {
		t.Errorf("Message() = %q", event.Message())
	}
	if event.StructuredData()[SDIDModel]["table"] != "books" {
		t.Errorf("StructuredData model.table = %v, want 'books'", event.StructuredData()[SDIDModel]["table"])
	}

	failed := ModelEvent{UserID: "admin-1", Model: "Book", Operation: "publish", ErrorMessage: "route conflict"}
	if failed.Message() != "admin-1 tried to publish model Book: route conflict" {
		t.Errorf("Message() = %q", failed.Message())
	}
}

func TestFormatStructuredDataSorted(t *testing.T) {
	got := formatStructuredData(map[string]map[string]string{
		"b@32473": {"z": "1", "a": "2"},
		"a@32473": {"k": "v"},
	})
	want := `[a@32473 k="v"][b@32473 a="2" z="1"]`
	if got != want {
		t.Errorf("formatStructuredData() = %q, want %q", got, want)
	}
	if formatStructuredData(nil) != "" {
		t.Error("Expected empty structured data for nil map")
	}
}

func TestAuditToggle(t *testing.T) {
	originalEnabled := auditEnabled
	defer func() {
		auditEnabled = originalEnabled
	}()

	SetEnabled(false)
	if IsEnabled() {
		t.Error("Expected audit to be disabled")
	}

	SetEnabled(true)
	if !IsEnabled() {
		t.Error("Expected audit to be enabled")
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", `"simple"`},
		{`with"quote`, `"with\"quote"`},
		{`with\backslash`, `"with\\backslash"`},
		{`with]bracket`, `"with\]bracket"`},
		{`all"special\chars]`, `"all\"special\\chars\]"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeSDValue(tt.input)
			if got != tt.want {
				t.Errorf("escapeSDValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
