package bedrock

import "fmt"

// InvocationError marks a terminal provider-side failure: network error,
// timeout, throttling after exhausted retries, or an undecodable response.
type InvocationError struct {
	ModelID string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoking %s: %v", e.ModelID, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
