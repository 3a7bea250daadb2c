// Package main is the entry point for catalog-browser.
package main

import "github.com/donaldgifford/catalog-browser/cmd/catalog-browser/cmd"

func main() {
	cmd.Execute()
}
