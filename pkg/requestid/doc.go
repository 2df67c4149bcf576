// Package requestid tags every HTTP request with a correlation id.
//
// The id is taken from a valid X-Request-ID header or generated as a UUID,
// stored in the request context, echoed back in the response header and added
// to log records through LoggerExtractor. Error responses include it so users
// can quote it in bug reports.
package requestid
