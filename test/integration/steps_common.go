package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	vars         map[string]string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:   tc,
		vars: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^an autocrud server is running$`, s.anAutocrudServerIsRunning)
	sc.Step(`^I am logged in as "([^"]*)"$`, s.iAmLoggedInAs)
	sc.Step(`^I am not logged in$`, s.iAmNotLoggedIn)

	// Authentication steps
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInWithPassword)
	sc.Step(`^I should receive a token$`, s.iShouldReceiveAToken)

	// Model steps
	sc.Step(`^a published model:$`, s.aPublishedModel)
	sc.Step(`^the table "([^"]*)" should exist$`, s.theTableShouldExist)

	// Request steps
	sc.Step(`^I send a (GET|DELETE|POST) request to "([^"]*)"$`, s.iSendARequestTo)
	sc.Step(`^I send a (POST|PUT) request to "([^"]*)" with body:$`, s.iSendARequestWithBody)
	sc.Step(`^I remember the response "([^"]*)" as "([^"]*)"$`, s.iRememberTheResponseAs)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^the response should be a list of (\d+) records?$`, s.theResponseShouldBeAListOf)
}

// Background steps

func (s *StepsContext) anAutocrudServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) iAmLoggedInAs(email string) error {
	if err := s.iLogInWithPassword(email, testSeedPassword); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login as %s failed with %d: %s", email, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) iAmNotLoggedIn() error {
	s.authToken = ""
	return nil
}

// Authentication steps

func (s *StepsContext) iLogInWithPassword(email, password string) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	if err := s.do(http.MethodPost, "/auth/login", body, false); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusOK {
		var login struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(s.responseBody, &login); err == nil {
			s.authToken = login.Token
		}
	}
	return nil
}

func (s *StepsContext) iShouldReceiveAToken() error {
	var login struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(s.responseBody, &login); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	if strings.Count(login.Token, ".") != 2 {
		return fmt.Errorf("token is not a JWT: %q", login.Token)
	}
	if login.User.ID == "" || login.User.Role == "" {
		return fmt.Errorf("login response is missing the user: %s", string(s.responseBody))
	}
	return nil
}

// Model steps

func (s *StepsContext) aPublishedModel(doc *godog.DocString) error {
	var def struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(doc.Content), &def); err != nil {
		return fmt.Errorf("invalid model definition: %w", err)
	}

	saved := s.authToken
	defer func() { s.authToken = saved }()

	if err := s.iAmLoggedInAs("admin@example.com"); err != nil {
		return err
	}
	if err := s.do(http.MethodPost, "/admin/models", []byte(doc.Content), true); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("create model %s failed with %d: %s", def.Name, s.response.StatusCode, string(s.responseBody))
	}
	if err := s.do(http.MethodPost, "/admin/models/"+def.Name+"/publish", nil, true); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("publish model %s failed with %d: %s", def.Name, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theTableShouldExist(table string) error {
	var count int64
	if err := s.tc.DB.Raw(
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ?`,
		table,
	).Scan(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("table %s does not exist", table)
	}
	return nil
}

// Request steps

func (s *StepsContext) iSendARequestTo(method, path string) error {
	return s.do(method, s.expand(path), nil, true)
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return s.do(method, s.expand(path), []byte(s.expand(body.Content)), true)
}

func (s *StepsContext) iRememberTheResponseAs(field, name string) error {
	value, err := s.responseField(field)
	if err != nil {
		return err
	}
	s.vars[name] = value
	return nil
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := s.responseField(field)
	if err != nil {
		return err
	}
	if value != s.expand(expected) {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, value)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(s.responseBody), s.expand(text)) {
		return fmt.Errorf("response does not contain %q: %s", text, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldBeAListOf(n int) error {
	var list []json.RawMessage
	if err := json.Unmarshal(s.responseBody, &list); err != nil {
		return fmt.Errorf("response is not a list: %w", err)
	}
	if len(list) != n {
		return fmt.Errorf("expected %d records, got %d: %s", n, len(list), string(s.responseBody))
	}
	return nil
}

// Helpers

func (s *StepsContext) do(method, path string, body []byte, withToken bool) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken && s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// responseField reads a dotted path such as "data.name" from a JSON object
// response and renders it as a string.
func (s *StepsContext) responseField(path string) (string, error) {
	var current interface{}
	decoder := json.NewDecoder(bytes.NewReader(s.responseBody))
	decoder.UseNumber()
	if err := decoder.Decode(&current); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("%s: not an object at %q", path, part)
		}
		current, ok = obj[part]
		if !ok {
			return "", fmt.Errorf("%s: missing %q in %s", path, part, string(s.responseBody))
		}
	}

	switch v := current.(type) {
	case nil:
		return "null", nil
	case string:
		return v, nil
	default:
		return fmt.Sprint(v), nil
	}
}

// expand replaces {name} with remembered values.
func (s *StepsContext) expand(text string) string {
	for name, value := range s.vars {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}
