package dbg

import (
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// Name turns a pointer into a random readable name, which is much easier to
// follow than an address when a debug listing prints hundreds of simplices.
// Names are handed out lazily in order of demand, so the same name does not
// refer to the same thing between runs. The memo is never cleared.

var (
	mu   sync.Mutex
	memo = make(map[interface{}]string)
)

func init() {
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Ptr && v.IsNil() {
		return "Ø"
	}

	mu.Lock()
	defer mu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := capitalize(petname.Adjective()) + capitalize(petname.Name())
	memo[obj] = r
	return r
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
