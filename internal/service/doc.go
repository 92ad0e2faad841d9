// Package service contains the application use cases of lexiquiz. It
// orchestrates domain objects, the quiz engine and the repositories defined
// in internal/store.
//
// Key components:
//
//   - UserService: registration and lookup of users.
//   - WordService: management of a user's vocabulary list, including bulk
//     import from spreadsheets.
//   - QuizService: drives quiz sessions for users. At most one session per
//     user is kept in a SessionRegistry; progress is written back to the
//     word store in a single transaction when a session is finished.
//   - Sweeper: a scheduled job that quits quiz sessions left idle.
//
// Services receive their dependencies through constructors and never depend
// on a specific storage implementation.
package service
