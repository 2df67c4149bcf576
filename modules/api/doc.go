// Package api exposes signup, login and the saved-book list as a JSON API.
//
// Routes (relative to the /api mount point):
//
//	POST   /signup              {username,email,password} -> 201 {data:{token,user}}
//	POST   /login               {email,password}          -> 200 {data:{token,user}}
//	GET    /me                                            -> 200 {data:user}
//	POST   /me/books            {bookId,title,...}        -> 200 {data:user}
//	DELETE /me/books/{bookId}                             -> 200 {data:user}
//
// Authentication is read from the request context populated by
// auth.Middleware; handlers never parse the Authorization header themselves.
package api
