// Package main provides the regiodb CLI application.
// regiodb manages the lifecycle of the NRW regional statistics
// warehouse.
package main

import (
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/cmd"
)

func main() {
	cmd.Execute()
}
