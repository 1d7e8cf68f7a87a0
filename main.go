package main

import "decide-backend/cmd"

// @title decide-backend API
// @version 1.0
// @description Classify decisions into the Eisenhower matrix through a short yes/no flow.

// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization

func main() {
	cmd.Execute()
}
