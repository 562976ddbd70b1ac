// Package prefs holds user preferences. Preference values are represented by
// the Bool and String types. Each type can have a pre and post hook
// function, called whenever the value is set. The hooks are the mechanism by
// which a preference value is propagated to the emulated hardware.
//
// Values are registered with a Disk instance under a key and can then be
// saved to and loaded from a file. The file format is one "key :: value" pair
// per line, preceded by a warning not to edit the file by hand.
//
// Preferences can also be set from the command line. The string given to
// PushCommandLineStack() is of the form "key::value; key::value". Values on
// the top of the command line stack override the values loaded from disk.
package prefs
