package main

import "diffly/cmd"

func main() {
	cmd.Execute()
}
