// Package results carries the outcome of a service operation: either a
// success payload or a domain failure. Infrastructure errors travel
// separately as a plain error return.
package results

// OperationResult holds exactly one of Success or Failure.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult wraps a domain failure.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

// IsSuccess reports whether the operation produced a success payload.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether the operation produced a domain failure.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}

// HandlerResult is a topic/payload pair ready to be published.
type HandlerResult struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// MapToHandlerResults publishes the success payload on successTopic or the
// failure on failureTopic. An empty result maps to nothing.
func (r OperationResult[S, F]) MapToHandlerResults(successTopic, failureTopic string) []HandlerResult {
	switch {
	case r.IsSuccess():
		return []HandlerResult{{Topic: successTopic, Payload: *r.Success}}
	case r.IsFailure():
		return []HandlerResult{{Topic: failureTopic, Payload: *r.Failure}}
	default:
		return nil
	}
}
