package prefs

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var commandLineCrit sync.Mutex
var commandLineStack []map[string]string

// PushCommandLineStack forwards command line settings to the prefs system.
// Prefs values are of the form:
//
//	key1::value1; key2::value2; ...
//
// Settings without a double colon are ignored
func PushCommandLineStack(prefs string) {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	commandLineStack = append(commandLineStack, make(map[string]string))
	cl := commandLineStack[len(commandLineStack)-1]

	for _, p := range strings.Split(prefs, ";") {
		kv := strings.Split(p, "::")
		if len(kv) == 2 {
			cl[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
}

// PopCommandLineStack removes the top of the command line stack and returns
// any entries that were not consumed, in the same format as accepted by
// PushCommandLineStack()
func PopCommandLineStack() string {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	if len(commandLineStack) == 0 {
		return ""
	}

	popped := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	keys := make([]string, 0, len(popped))
	for key := range popped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var s strings.Builder
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s::%v; ", key, popped[key]))
	}

	return strings.TrimSuffix(s.String(), "; ")
}

// GetCommandLinePref returns the value for key from the top of the command
// line stack. The entry is consumed
func GetCommandLinePref(key string) (bool, string) {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	if len(commandLineStack) == 0 {
		return false, ""
	}

	cl := commandLineStack[len(commandLineStack)-1]
	if v, ok := cl[key]; ok {
		delete(cl, key)
		return true, v
	}

	return false, ""
}
