package main

import "library-management/cmd"

func main() {
	cmd.Execute()
}
