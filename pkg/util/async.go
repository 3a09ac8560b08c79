package util

// Runner schedules fire-and-forget work.
type Runner func(fn func())

// Background runs fn on its own goroutine; callers never wait for it.
func Background(fn func()) {
	go fn()
}

// Inline runs fn on the caller's goroutine. Tests use it to observe writes.
func Inline(fn func()) {
	fn()
}
