package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// WarningBoilerPlate is prepended to the prefs file
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// the string that separates the key from the value in the prefs file
const separator = " :: "

// UnknownKey is returned by Disk.Set() when the key has not been added
var UnknownKey = errors.New("prefs: unknown key")

// Disk represents preference values as stored on disk
type Disk struct {
	path    string
	entries map[string]Pref

	// keys that were set from the command line are not changed by Load()
	cmdline map[string]bool
}

// NewDisk is the preferred method of initialisation for the Disk type
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path for prefs file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]Pref),
		cmdline: make(map[string]bool),
	}, nil
}

// Add a preference value to the list of values. If the key is present on the
// command line stack the value is set from there
func (dsk *Disk) Add(key string, p Pref) error {
	if strings.Contains(key, separator) || strings.Contains(key, "::") {
		return fmt.Errorf("prefs: illegal key: %s", key)
	}

	dsk.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		if err := p.Set(v); err != nil {
			return fmt.Errorf("prefs: %s: %w", key, err)
		}
		dsk.cmdline[key] = true
	}

	return nil
}

// Set the value of a registered key
func (dsk *Disk) Set(key string, v Value) error {
	p, ok := dsk.entries[key]
	if !ok {
		return fmt.Errorf("%w: %s", UnknownKey, key)
	}
	return p.Set(v)
}

// Keys returns the registered keys in sorted order
func (dsk *Disk) Keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (dsk *Disk) String() string {
	var s strings.Builder
	for _, k := range dsk.Keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, dsk.entries[k].String()))
	}
	return s.String()
}

// Reset all registered values to their zero value
func (dsk *Disk) Reset() error {
	for _, k := range dsk.Keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return fmt.Errorf("prefs: %s: %w", k, err)
		}
	}
	return nil
}

// Save current preference values to disk. Entries in the file that have not
// been added to this Disk instance are preserved
func (dsk *Disk) Save() error {
	existing, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		existing[k] = p.String()
	}

	keys := make([]string, 0, len(existing))
	for k := range existing {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s%s%s\n", k, separator, existing[k])
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. A missing file is not an error. Keys in
// the file that have not been added to this Disk instance are ignored, as are
// keys that were set from the command line
func (dsk *Disk) Load() error {
	existing, err := dsk.read()
	if err != nil {
		return err
	}

	for k, v := range existing {
		if dsk.cmdline[k] {
			continue
		}
		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}

func (dsk *Disk) read() (map[string]string, error) {
	entries := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// the first line must be the boilerplate warning
	if !scanner.Scan() {
		return entries, scanner.Err()
	}
	if scanner.Text() != WarningBoilerPlate {
		return nil, fmt.Errorf("prefs: %s is not a valid prefs file", dsk.path)
	}

	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), separator, 2)
		if len(kv) != 2 {
			continue
		}
		entries[kv[0]] = kv[1]
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return entries, nil
}
