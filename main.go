package main

import "task-dashboard.com/task-dashboard/cmd"

func main() {
	cmd.Execute()
}
