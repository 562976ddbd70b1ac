//go:build !release

package resources

// resources for development builds live in the working directory
func resourcePath() (string, error) {
	return ".cda", nil
}
