package main

import "dns-stats-datasource/cmd"

func main() {
	cmd.Execute()
}
