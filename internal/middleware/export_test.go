package middleware

import "github.com/newrelic/go-agent/v3/newrelic"

// SetNoticeError swaps the New Relic error reporter and returns a restore func.
func SetNoticeError(f func(*newrelic.Transaction, error)) func() {
	prev := noticeError
	noticeError = f
	return func() { noticeError = prev }
}
