package main

import "github.com/louisiaegerv/runescapeOSRS-autoclicker/cmd"

func main() {
	cmd.Execute()
}
