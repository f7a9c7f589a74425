// Package submit posts a form's fields to a fixed endpoint and renders the
// plain text answer into an output element.
//
// A Submitter handles one submit event at a time in two halves: the default
// action is suppressed and the payload captured before Handle returns, while
// the network round trip and the output write happen on a goroutine. There is
// no retry, timeout, or cancellation. Overlapping submissions are independent
// and whichever finishes last owns the output text.
package submit
