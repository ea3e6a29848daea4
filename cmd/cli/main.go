/*
Copyright © 2026 The ramuda-sample Authors

*/
package main

import "github.com/glomex/ramuda-sample/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
