// Package resources locates the files the emulator keeps between sessions:
// the preferences file and the window geometry file.
//
// JoinPath() places a path under the resource directory, creating any missing
// directories on the way. Files themselves are only created by Write().
//
// The resource directory depends on the build:
//
//	release build tag	<user config dir>/cda
//	otherwise		.cda in the working directory
//
// If a file named portable.txt sits next to the binary then the resource
// directory is CDA_UserData, also next to the binary, regardless of the build.
package resources
