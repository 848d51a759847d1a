// Package availability evaluates whether catalogue items can be served to a
// user. Release windows gate when an item becomes playable; country
// restrictions scoped to the user's catalogue decide where. Evaluation is
// pure, the caller supplies the metadata and the reference time.
package availability
