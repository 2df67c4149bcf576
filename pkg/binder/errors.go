package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParsePath    = errors.New("failed to parse path parameters")

	// ErrBinderNotApplicable tells the caller to skip this binder for the
	// target type instead of failing the request.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
