package cda

import (
	"fmt"

	"github.com/rc3200/cda/prefs"
)

// Preferences binds the runtime configuration of a CDA to values that can be
// saved to disk and set from the command line
type Preferences struct {
	dsk *prefs.Disk

	BlinkAttribute prefs.Bool
	UserFont       prefs.Bool
	VSyncInterrupt prefs.Bool
	Policy         prefs.String
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the file at path if it exists. The
// CDA is updated with the loaded values
func NewPreferences(cda *CDA, path string) (*Preferences, error) {
	p := &Preferences{}

	// current device settings are the defaults
	p.BlinkAttribute.Set(cda.IsBlinkAttribute())
	p.UserFont.Set(cda.IsUserFont())
	p.VSyncInterrupt.Set(cda.IsVSyncInterrupt())
	p.Policy.Set(cda.Policy().String())

	p.BlinkAttribute.SetHookPost(func(v prefs.Value) error {
		cda.SetBlinkAttribute(v.(bool))
		return nil
	})
	p.UserFont.SetHookPost(func(v prefs.Value) error {
		cda.SetUserFont(v.(bool))
		return nil
	})
	p.VSyncInterrupt.SetHookPost(func(v prefs.Value) error {
		cda.SetVSyncInterrupt(v.(bool))
		return nil
	})
	p.Policy.SetHookPre(func(v prefs.Value) error {
		_, err := ParsePolicy(v.(string))
		return err
	})
	p.Policy.SetHookPost(func(v prefs.Value) error {
		policy, err := ParsePolicy(v.(string))
		if err != nil {
			return err
		}
		return cda.SetPolicy(policy)
	})

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, fmt.Errorf("cda: %w", err)
	}

	for _, e := range []struct {
		key string
		p   prefs.Pref
	}{
		{"cda.blink", &p.BlinkAttribute},
		{"cda.userfont", &p.UserFont},
		{"cda.vsync", &p.VSyncInterrupt},
		{"cda.policy", &p.Policy},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, fmt.Errorf("cda: %w", err)
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, fmt.Errorf("cda: %w", err)
	}

	return p, nil
}

// Load preferences from disk
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Set the preference with the key to the value. The error wraps
// prefs.UnknownKey if the key is not one of the CDA preferences
func (p *Preferences) Set(key string, value string) error {
	return p.dsk.Set(key, value)
}

// Reset every preference to its zero value. Flags are cleared and the policy
// reverts to FirePerCrossing
func (p *Preferences) Reset() error {
	return p.dsk.Reset()
}
