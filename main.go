package main

import "github.com/civicdata/legisdb/cmd"

func main() {
	cmd.Execute()
}
