// Package handler turns typed request handlers into http.HandlerFunc values
// with JSON responses.
//
// A handler receives a Context and an already decoded request value and
// returns a Response:
//
//	type loginRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	login := func(ctx handler.Context, req loginRequest) handler.Response {
//		session, err := svc.Login(ctx, req.Email, req.Password)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(session)
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinders[handler.Context, loginRequest](binder.JSON(0)),
//		handler.WithErrorHandler[handler.Context, loginRequest](errorHandler),
//	))
//
// Errors reach the ErrorHandler, which classifies them into a status and an
// ErrorDetail. Validation errors become 422 with per-field details, binder
// errors 400 or 415, and anything unrecognized a generic 500. Application
// errors are mapped with an ErrorMapper passed to NewErrorHandler.
package handler
