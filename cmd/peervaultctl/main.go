// Command peervaultctl is the CLI companion to the peervault service.
package main

import "github.com/peervault/peervault/cmd/peervaultctl/cmd"

func main() {
	cmd.Execute()
}
