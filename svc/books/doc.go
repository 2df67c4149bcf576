// Package books serves the signed-in user's profile and saved-book list.
//
// Every operation passes through auth.RequireUser first, so an anonymous
// request context never reaches the store. Store failures are logged here and
// surfaced as auth persistence errors with a fixed message.
package books
