// Package submission runs a form submission end to end: re-hydrate the
// identity, validate, build the payload, check it against its schema and post
// it upstream exactly once.
//
// Identical submissions that arrive while one is already in flight are
// collapsed onto the running request, so a double click never produces two
// upstream POSTs.
package submission
