// Package cdterr implements the panic/recover error-threading convention
// used throughout the engine, mirrored from the teacher's internal/throw.go.
// Plumbing a returned error through every local mutator in the insertion and
// constrained-edge engines would bury the geometry in plumbing; instead,
// internal code panics with a Violation, and the single public entry point
// (cdt.Triangulate) recovers and converts it back into a normal error.
package cdterr

import "github.com/pkg/errors"

// Violation is a contract-violation error: fewer than three input points, a
// self-intersecting or clockwise polygon, a point-location walk that fell
// off the triangulation, and so on. See spec §7 "Contract violations".
type Violation error

// Fatalf panics with a Violation built from a pkg/errors-wrapped message, so
// the recovered error carries a stack trace for debugging.
func Fatalf(format string, args ...interface{}) {
	panic(Violation(errors.Errorf(format, args...)))
}

// Recover converts a recovered Violation panic back into an error. Because
// Violation has exactly error's method set, any error-valued panic (a runtime
// error included) matches and is returned the same way; a panic value that is
// not an error is re-thrown.
func Recover(r interface{}) error {
	if r == nil {
		return nil
	}
	if violation, ok := r.(Violation); ok {
		return violation
	}
	panic(r)
}
