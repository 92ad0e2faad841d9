// Package quiz implements the quiz session engine: it turns an ordered set of
// words into a sequence of prompts, grades each answer, tracks per-word
// progress for the duration of the session, and decides when the session is
// complete or abandoned.
//
// A Session moves through three states. It is ACTIVE from Start until either
// Finish (COMPLETED) or Quit (ABORTED); both are terminal. While ACTIVE the
// cursor points at the next unanswered item, and the session is "exhausted"
// once every item has been graded.
//
// The engine holds copies of the words it was started with and never touches
// storage. Progress changes become visible to callers only through the
// ProgressUpdate values returned by Finish, which the caller persists.
//
// A Session is not safe for concurrent use; it belongs to the single flow
// that started it.
package quiz
