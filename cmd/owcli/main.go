package main

import (
	"owprofile-backend/cmd/owcli/commands"
	"owprofile-backend/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
