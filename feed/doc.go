// Package feed implements the home feed state machine.
//
// A Controller owns a single State value: the active category, the optional
// search text, the accumulated movie list and the pagination and loading flags.
// Every transition (SelectCategory, UpdateSearchText, RequestMore, Retry)
// mutates that state synchronously and, when a fetch is needed, returns a
// Request describing it. The caller performs the request with Fetch, which never
// touches the state and may run on another goroutine, and hands the Result back
// to Apply.
//
// Each Request carries the generation token that was current when it was
// issued. Apply drops results whose generation no longer matches, so a slow
// response for a category or query the user already left can never overwrite
// newer state.
//
// The Controller is not safe for concurrent use: transitions and Apply must be
// called from one goroutine (the UI loop). Only Fetch may run elsewhere.
//
// Sentinel models the trailing "load more" marker of the list. It turns
// visibility changes into at most one RequestMore call per transition.
package feed
