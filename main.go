// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/Dosochka/moodle-h5p-library-loader/cmd/h5pack"

func main() {
	cmd.Execute()
}
