package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value represents the actual Go preference value
type Value any

// Pref is implemented by all preference types
type Pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// hooks are shared by all preference types. the pre hook can veto a change by
// returning an error. the post hook is called after the new value is stored
type hooks struct {
	pre  func(value Value) error
	post func(value Value) error
}

// SetHookPre sets the function called before a new value is stored
func (h *hooks) SetHookPre(f func(value Value) error) {
	h.pre = f
}

// SetHookPost sets the function called after a new value is stored
func (h *hooks) SetHookPost(f func(value Value) error) {
	h.post = f
}

func (h *hooks) store(v *atomic.Value, nv Value) error {
	if h.pre != nil {
		if err := h.pre(nv); err != nil {
			return err
		}
	}
	v.Store(nv)
	if h.post != nil {
		return h.post(nv)
	}
	return nil
}

// Bool implements a boolean type in the prefs system
type Bool struct {
	hooks
	value atomic.Value
}

func (p *Bool) String() string {
	return strconv.FormatBool(p.Get().(bool))
}

// Set accepts a bool or a string. The strings "true", "on", "false" and "off"
// are accepted in any case. Any other string is an error and the value is not
// changed
func (p *Bool) Set(v Value) error {
	switch v := v.(type) {
	case bool:
		return p.store(&p.value, v)
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on":
			return p.store(&p.value, true)
		case "false", "off":
			return p.store(&p.value, false)
		}
		return fmt.Errorf("prefs: not a boolean value: %q", v)
	}
	return fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
}

// Get returns the raw pref value
func (p *Bool) Get() Value {
	if v, ok := p.value.Load().(bool); ok {
		return v
	}
	return false
}

// Reset sets the value to false
func (p *Bool) Reset() error {
	return p.Set(false)
}

// String implements a string type in the prefs system
type String struct {
	hooks
	value atomic.Value
}

func (p *String) String() string {
	s, _ := p.value.Load().(string)
	return s
}

// Set formats any value with the %v verb and stores the result
func (p *String) Set(v Value) error {
	return p.store(&p.value, strings.TrimSpace(fmt.Sprintf("%v", v)))
}

// Get returns the raw pref value
func (p *String) Get() Value {
	return p.String()
}

// Reset sets the value to the empty string
func (p *String) Reset() error {
	return p.Set("")
}
