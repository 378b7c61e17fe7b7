package main

import "github.com/taskfold/taskfold/cmd"

func main() {
	cmd.Execute()
}
