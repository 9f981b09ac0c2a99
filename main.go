package main

import "github.com/naka-gawa/github-activity-grid/cmd"

func main() {
	cmd.Execute()
}
