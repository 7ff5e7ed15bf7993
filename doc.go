// Package sessions is the client core for the studio scheduling application:
// typed gateways over the REST resources (auth, session, teacher, user), an
// identity store with a live logged-in signal, and the workflows views drive.
//
// Identity lifecycle:
//   - IdentityStore holds at most one authenticated Identity. LogIn replaces
//     it wholesale, LogOut drops it, and Observe delivers a replay-latest
//     stream of the logged-in boolean so navigation chrome can react without
//     polling.
//
// Authorization:
//   - Permit is a pure decision over an access level (anonymous, member,
//     admin) and an action. GuardRoute layers the route table on top and
//     answers with a redirect target instead of an error. Both are UX
//     conveniences only; the server remains the trust boundary.
//
// Membership:
//   - MembershipReconciler toggles participation with the mutate-then-refetch
//     protocol: join or leave, then re-get the session and replace the held
//     copy wholesale. The toggle response is never trusted for membership
//     state, and a failed toggle leaves the view untouched.
package sessions
