package main

import "github.com/OpenAutomateOrg/bot-packager/cmd/bot-packager/cmd"

func main() {
	cmd.Execute()
}
