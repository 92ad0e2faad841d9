// Package domain contains the entities of the vocabulary trainer: users and
// the words they collect. The quiz subpackage holds the practice session
// state machine built on top of them.
package domain
