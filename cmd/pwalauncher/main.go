// SPDX-License-Identifier: MPL-2.0

// Command pwalauncher starts a Store-packaged progressive web app in
// Microsoft Edge.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(int(execute(context.Background(), NewApp(Dependencies{}), os.Args[1:])))
}
