// Package testutil provides recording fakes for the core's external
// collaborators: the settings repository, the outbound transport, the
// policy query, and the language enumerator.
//
// The fakes record every interaction so tests can assert on call counts
// and payloads, and they can be scripted to fail where the contract says
// failures must propagate.
package testutil
