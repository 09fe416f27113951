package usecases

// runAsync detaches fire-and-forget work from the request. Replaceable in
// tests to run inline.
var runAsync = func(fn func()) {
	go fn()
}
