// Package auth is the authentication and authorization boundary of bookshelf.
//
// It has four parts:
//
//   - TokenService issues signed, time-bounded identity tokens and verifies them.
//   - ContextBuilder (and Middleware) turn the Authorization header of every
//     request into a RequestContext, downgrading any verification failure to
//     an anonymous context.
//   - RequireUser is the gate every state-changing operation passes through.
//   - Service implements signup and the credential verifier (login).
//
// Errors surfaced to callers are *Error values with a closed set of kinds;
// use errors.Is against the exported sentinels or KindOf to branch on them.
package auth
