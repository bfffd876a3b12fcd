package main

import "github.com/ttobae/daily-contrib/cmd"

func main() {
	cmd.Execute()
}
