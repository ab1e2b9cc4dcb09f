// Command pantry tracks surplus-food donations: it loads providers,
// receivers, food listings and claims into a local store, runs the report
// catalog over them and edits listings and claims.
package main

import "github.com/mesh-intelligence/pantry/internal/cli"

func main() {
	cli.Execute()
}
