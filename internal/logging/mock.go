package logging

// MockLogger is a Logger implementation for tests. It captures log entries
// for verification.
type MockLogger struct {
	Entries       []LogEntry
	pendingError  error
	pendingFields []Field
}

// LogEntry represents a single log entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	allFields := append(append([]Field{}, m.pendingFields...), fields...)
	m.Entries = append(m.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
		Error:   m.pendingError,
	})
}

// Debug logs a debug-level message with optional fields.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info logs an info-level message with optional fields.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn logs a warning-level message with optional fields.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error logs an error-level message with optional fields.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// WithError attaches an error to subsequent entries.
func (m *MockLogger) WithError(err error) Logger {
	m.pendingError = err
	return m
}

// WithField attaches a field to subsequent entries.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	m.pendingFields = append(m.pendingFields, Field{Key: key, Value: value})
	return m
}

// WithFields attaches fields to subsequent entries.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	m.pendingFields = append(m.pendingFields, fields...)
	return m
}

// HasMessage reports whether any captured entry contains the given message.
func (m *MockLogger) HasMessage(msg string) bool {
	for _, e := range m.Entries {
		if e.Message == msg {
			return true
		}
	}
	return false
}
