package auth

// Outcome labels reported to a Recorder.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeAlreadyExists      = "already_exists"
	OutcomeInvalid            = "invalid"
	OutcomeAnonymous          = "anonymous"
	OutcomeError              = "error"
)

// Recorder receives auth outcome events, typically to feed metrics.
type Recorder interface {
	ObserveSignup(outcome string)
	ObserveLogin(outcome string)
	ObserveTokenVerification(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSignup(string)            {}
func (noopRecorder) ObserveLogin(string)             {}
func (noopRecorder) ObserveTokenVerification(string) {}
