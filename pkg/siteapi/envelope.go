package siteapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the {success, ...} wrapper every operation returns.
//
// On success Raw holds the server body byte for byte and Body holds the same
// value decoded with numbers preserved as json.Number. On failure Err is set,
// Success is false, and Raw and Body are empty.
type Envelope struct {
	Success bool
	// StatusCode is the HTTP status of the response. It is zero for envelopes
	// assembled by the client, such as the GetLeads aggregate or a failure
	// that never reached the server.
	StatusCode int
	Body       interface{}
	Raw        json.RawMessage
	Err        *OperationError
}

// NewEnvelope parses a response body into an envelope. It returns
// ErrInvalidJSON when data is not a single well-formed JSON value.
func NewEnvelope(statusCode int, data []byte) (*Envelope, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w (%d bytes)", ErrInvalidJSON, len(data))
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var body interface{}

	err := decoder.Decode(&body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	return &Envelope{
		Success:    successField(body),
		StatusCode: statusCode,
		Body:       body,
		Raw:        append(json.RawMessage(nil), data...),
	}, nil
}

// NewEnvelopeFromValue builds a successful-path envelope from a value the
// client assembled itself.
func NewEnvelopeFromValue(value interface{}) (*Envelope, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}

	return NewEnvelope(0, data)
}

// Failure wraps an operation error into a failed envelope.
func Failure(err *OperationError) *Envelope {
	return &Envelope{Err: err}
}

// OK reports whether the call went through and the server reported success.
func (e *Envelope) OK() bool {
	return e != nil && e.Err == nil && e.Success
}

// Failed reports whether the client itself failed to complete the call.
func (e *Envelope) Failed() bool {
	return e == nil || e.Err != nil
}

// ErrorMessage returns the client failure message, or the server's "error"
// field when the server answered with success=false.
func (e *Envelope) ErrorMessage() string {
	if e == nil {
		return ""
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	if msg, ok := e.Field("error").(string); ok {
		return msg
	}

	return ""
}

// Field returns a top-level field of an object body, or nil.
func (e *Envelope) Field(key string) interface{} {
	if e == nil {
		return nil
	}

	object, ok := e.Body.(map[string]interface{})
	if !ok {
		return nil
	}

	return object[key]
}

// Decode unmarshals the raw body into v. It returns the operation error for a
// failed envelope.
func (e *Envelope) Decode(v interface{}) error {
	if e == nil {
		return ErrOperationFailed
	}

	if e.Err != nil {
		return e.Err
	}

	err := json.Unmarshal(e.Raw, v)
	if err != nil {
		return fmt.Errorf("decoding envelope: %w", err)
	}

	return nil
}

// MarshalJSON renders the body verbatim on success and
// {"success":false,"error":"..."} on failure. A nil envelope renders as a
// failure.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	if e == nil {
		return marshalFailure(ErrOperationFailed)
	}

	if e.Err != nil {
		return marshalFailure(e.Err)
	}

	if len(e.Raw) == 0 {
		return []byte(fmt.Sprintf(`{"success":%t}`, e.Success)), nil
	}

	return e.Raw, nil
}

func marshalFailure(failure error) ([]byte, error) {
	data, err := json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{Success: false, Error: failure.Error()})
	if err != nil {
		return nil, fmt.Errorf("encoding failed envelope: %w", err)
	}

	return data, nil
}

func successField(body interface{}) bool {
	object, ok := body.(map[string]interface{})
	if !ok {
		return false
	}

	success, _ := object["success"].(bool)

	return success
}
