//go:build windows

package fileval

import "os"

// Windows has no executable bit.
func checkExecutable(os.FileInfo, string) error {
	return nil
}
