// Package binder decodes HTTP requests into typed request structs.
//
// Binders share the signature func(*http.Request, any) error so a handler can
// apply several in order:
//
//	handler.Wrap(h, handler.WithBinders[handler.Context, saveBookRequest](
//		binder.Path(chi.URLParam),
//		binder.JSON(0),
//	))
//
// A binder that has nothing to bind for the target returns
// ErrBinderNotApplicable and is skipped.
package binder
