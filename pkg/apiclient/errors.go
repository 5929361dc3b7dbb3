package apiclient

import "errors"

var (
	// ErrInvalidBaseURL indicates the configured base URL could not be parsed
	ErrInvalidBaseURL = errors.New("apiclient.invalid_base_url")

	// ErrRequestFailed indicates the request never produced a response
	ErrRequestFailed = errors.New("apiclient.request_failed")

	// ErrUnexpectedStatus indicates the server answered outside the 2xx range
	ErrUnexpectedStatus = errors.New("apiclient.unexpected_status")

	// ErrInvalidResponse indicates a success response body could not be decoded
	ErrInvalidResponse = errors.New("apiclient.invalid_response")
)
