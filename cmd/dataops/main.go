package main

import (
	"tp4-dataops/cmd/dataops/commands"
	"tp4-dataops/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
