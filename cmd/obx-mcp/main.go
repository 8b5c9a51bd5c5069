package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	obxmcp "github.com/outbreakgames/obx/internal/mcp"
)

func main() {
	s := server.NewMCPServer("obx", "1.0.0")
	obxmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
