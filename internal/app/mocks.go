package app

import "plantpal_backend/internal/email"

// MockEmailProvider is used for tests and local development without SMTP.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(email *email.Email) error                      { return nil }
func (m *MockEmailProvider) SendWelcome(to, username string) error              { return nil }
func (m *MockEmailProvider) SendTrialReminder(to, username string, d int) error { return nil }
func (m *MockEmailProvider) Validate() error                                    { return nil }
func (m *MockEmailProvider) Close() error                                       { return nil }
