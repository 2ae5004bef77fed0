package main

import "github.com/spachava753/contactsbridge/cmd"

func main() {
	cmd.Execute()
}
