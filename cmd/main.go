// cmd/main.go
package main

import (
	"go-bank-ledger/app"
)

// @title           Bank Ledger API
// @version         1.0
// @description     Transaction processing engine for bank accounts with an append-only ledger and low-balance alerts.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
