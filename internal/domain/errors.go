package domain

// errors.go defines domain-specific error types.
type domainErr struct {
	message string
}

// Error returns the error message.
func (e domainErr) Error() string {
	return e.message
}

// NotFoundErr represents an error when a requested entity is not found.
type NotFoundErr struct {
	domainErr
}

// NewNotFoundErr creates a new NotFoundErr with the given message.
func NewNotFoundErr(message string) *NotFoundErr {
	return &NotFoundErr{
		domainErr: domainErr{message: message},
	}
}

// ValidationErr represents an error when validation fails.
type ValidationErr struct {
	domainErr
}

// NewValidationErr creates a new ValidationErr with the given message.
func NewValidationErr(message string) *ValidationErr {
	return &ValidationErr{
		domainErr: domainErr{message: message},
	}
}

// GatewayErrKind classifies a failed model gateway call. Every kind is fatal
// for the current call; none is retried automatically.
type GatewayErrKind string

const (
	// GatewayErrKind_Transport covers DNS, connect and timeout failures.
	GatewayErrKind_Transport GatewayErrKind = "transport"
	// GatewayErrKind_HTTPStatus is a non-2xx response; the body is
	// surfaced in the message.
	GatewayErrKind_HTTPStatus GatewayErrKind = "http_status"
	// GatewayErrKind_Decode is a response body that failed to decode.
	GatewayErrKind_Decode GatewayErrKind = "decode"
	// GatewayErrKind_NoCandidates is a well-formed response carrying no
	// candidates.
	GatewayErrKind_NoCandidates GatewayErrKind = "no_candidates"
	// GatewayErrKind_PolicyBlocked is a provider-side refusal for safety
	// reasons, distinct from infrastructure failure.
	GatewayErrKind_PolicyBlocked GatewayErrKind = "policy_blocked"
)

// GatewayErr represents a failed model gateway call.
type GatewayErr struct {
	domainErr
	Kind GatewayErrKind
	// StatusCode is set for the http_status kind.
	StatusCode int
	// BlockReason is set for the policy_blocked kind.
	BlockReason string
}

// NewGatewayErr creates a new GatewayErr of the given kind.
func NewGatewayErr(kind GatewayErrKind, message string) *GatewayErr {
	return &GatewayErr{
		domainErr: domainErr{message: message},
		Kind:      kind,
	}
}

// NewPolicyBlockedErr creates the policy-block GatewayErr variant.
func NewPolicyBlockedErr(reason string) *GatewayErr {
	return &GatewayErr{
		domainErr:   domainErr{message: "generation blocked by provider policy: " + reason},
		Kind:        GatewayErrKind_PolicyBlocked,
		BlockReason: reason,
	}
}
