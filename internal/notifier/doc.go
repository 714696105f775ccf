// Package notifier announces newly tracked conferences.
//
// The notifier package supports posting announcements to various
// platforms including Twitter. It handles OAuth authentication, rate
// limiting, and message formatting for different channels.
package notifier
