/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package lookup

import stylfs "bennypowers.dev/stylus-lookup/fs"

// Resolve resolves req against the OS filesystem and the process working
// directory, discarding diagnostics.
func Resolve(req Request) (string, error) {
	return New(stylfs.NewOSFileSystem()).Resolve(req)
}
