// cmd/migrate/main.go
package main

import "github.com/your-org/ecommerce-platform/cmd/migrate/commands"

func main() {
	commands.Execute()
}
