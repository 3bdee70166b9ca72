// Package dbg turns opaque handles into short, memorable, colorized names for
// debug SVG/PNG dumps. It flagrantly leaks memory (names are memoized
// forever) but only when a caller is actually generating debug output.
package dbg

import (
	"reflect"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/logrusorgru/aurora"
)

var memo = map[any]string{}

func init() {
	// Names are generated in order of first demand, not in any order tied to
	// the handle's own index, so make them nondeterministic to remind the
	// reader that the same name doesn't refer to the same handle across runs.
	petname.NonDeterministicMode()
}

var paletteFuncs = []func(interface{}) aurora.Value{
	aurora.Cyan, aurora.Magenta, aurora.Yellow, aurora.Green, aurora.Blue, aurora.Red,
}

// colorFor picks a stable aurora color per handle kind, purely so a rendered
// graph's nexuses, trapezoids, segments, and query nodes are visually
// distinguishable at a glance.
func colorFor(kind string) func(interface{}) aurora.Value {
	h := uint32(2166136261)
	for i := 0; i < len(kind); i++ {
		h ^= uint32(kind[i])
		h *= 16777619
	}
	return paletteFuncs[h%uint32(len(paletteFuncs))]
}

// handle is the subset of Handle[T]'s behavior dbg needs, satisfied by any
// core.Handle[T] instantiation.
type handle interface {
	IsValid() bool
}

// Name returns a short readable name for h, memoized so the same handle
// always renders the same name within one process. Handles of different
// underlying types never collide, even if their raw indices do, because the
// memo key carries h's full dynamic type.
func Name[H handle](h H) string {
	if !h.IsValid() {
		return "Ø"
	}
	if r, ok := memo[h]; ok {
		return r
	}
	kind := reflect.TypeOf(h).String()
	plain := strings.Title(petname.Adjective()) + strings.Title(petname.Name())
	r := colorFor(kind)(plain).String()
	memo[h] = r
	return r
}
