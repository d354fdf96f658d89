// Package dbg turns triangle and point indices into readable names for log
// output, adapted from the teacher's pointer-to-name memo: since this
// engine's mesh has no pointer identity (see SPEC_FULL.md's design note on
// why Point is a value type), the memo key is the kind-tagged index instead
// of the object itself.
package dbg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

type key struct {
	kind string
	i    int
}

var memo = map[key]string{}

func init() {
	petname.NonDeterministicMode()
}

// Triangle returns a readable name for triangle index i, consistent for the
// life of the process.
func Triangle(i int) string { return name(key{"tri", i}) }

// Point returns a readable name for point index i, consistent for the life
// of the process.
func Point(i int) string { return name(key{"pt", i}) }

func name(k key) string {
	if k.i < 0 {
		return "Ø"
	}
	if r, ok := memo[k]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[k] = r
	return r
}
