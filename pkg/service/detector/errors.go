package detector

import "github.com/m-mizutani/goerr/v2"

// Terminal analysis errors. Either a full report result is returned or
// one of these is raised; no partial result is ever produced.
var (
	// ErrExternalUnavailable means every attempt failed on transport or
	// timeout. The caller should surface "analysis temporarily unavailable".
	ErrExternalUnavailable = goerr.New("external generation service unavailable")

	// ErrExternalMalformed means every attempt returned output that could
	// not be repaired into indicators. The caller should surface
	// "analysis failed, please retry".
	ErrExternalMalformed = goerr.New("external generation service returned malformed output")
)

// errMalformedResponse marks a single attempt whose output was
// structurally unusable. It triggers a retry and is promoted to
// ErrExternalMalformed once the attempt budget is exhausted.
var errMalformedResponse = goerr.New("malformed generation response")
