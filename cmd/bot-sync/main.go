package main

import "github.com/OpenAutomateOrg/bot-packager/cmd/bot-sync/cmd"

func main() {
	cmd.Execute()
}
