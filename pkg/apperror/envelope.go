package apperror

import "time"

// Body is the "error" member of a failure response.
type Body struct {
	Code      Code      `json:"code"`
	Message   string    `json:"message"`
	Details   *Details  `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Envelope is the JSON document written for every failed request.
type Envelope struct {
	Success bool `json:"success"`
	Error   Body `json:"error"`
}

// Envelope renders e in wire form.
func (e *Error) Envelope() Envelope {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return Envelope{
		Success: false,
		Error: Body{
			Code:      e.Code,
			Message:   e.Message,
			Details:   e.Details,
			Timestamp: ts,
		},
	}
}

// FromEnvelope rebuilds an *Error from a decoded failure response.
func FromEnvelope(env Envelope) *Error {
	msg := env.Error.Message
	if msg == "" {
		msg = env.Error.Code.Message()
	}
	return &Error{
		Code:      env.Error.Code,
		Message:   msg,
		Details:   env.Error.Details,
		Timestamp: env.Error.Timestamp,
	}
}
