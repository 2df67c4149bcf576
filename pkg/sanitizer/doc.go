// Package sanitizer normalizes user-supplied strings before validation and
// storage, and masks personal data before it reaches logs.
package sanitizer
