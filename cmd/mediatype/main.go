// Command mediatype resolves media types of files and serves them over HTTP.
package main

import "github.com/indigo-web/mediatype/internal/cmd"

func main() {
	cmd.Execute()
}
