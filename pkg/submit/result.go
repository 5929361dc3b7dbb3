package submit

// Status tags the terminal outcome of one pipeline run.
type Status string

const (
	// StatusSucceeded means the remote call and all success effects completed.
	StatusSucceeded Status = "succeeded"

	// StatusLocalInvalid means validation failed; no remote call was made.
	StatusLocalInvalid Status = "local_invalid"

	// StatusRemoteFailed means the remote call failed, or a success effect
	// failed after a successful remote call.
	StatusRemoteFailed Status = "remote_failed"
)

// Result is the discriminated outcome of a single submit. Exactly one of the
// three payload shapes is meaningful, selected by Status: Payload for
// StatusSucceeded, FieldErrors for StatusLocalInvalid, Err for
// StatusRemoteFailed.
type Result[Out any] struct {
	Status      Status
	Payload     Out
	FieldErrors map[string]string
	Err         error
}

// Succeeded reports whether the run reached its success effects.
func (r Result[Out]) Succeeded() bool {
	return r.Status == StatusSucceeded
}

func succeeded[Out any](payload Out) Result[Out] {
	return Result[Out]{Status: StatusSucceeded, Payload: payload}
}

func localInvalid[Out any](fieldErrors map[string]string) Result[Out] {
	return Result[Out]{Status: StatusLocalInvalid, FieldErrors: fieldErrors}
}

func remoteFailed[Out any](err error) Result[Out] {
	return Result[Out]{Status: StatusRemoteFailed, Err: err}
}
