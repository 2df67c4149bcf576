// Package environment names the deployment stage the service runs in.
// APP_ENV is parsed once at startup and drives the logging preset.
package environment
