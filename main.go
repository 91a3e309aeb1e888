/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ironstrike-games/studio-api/cmd"

func main() {
	cmd.Execute()
}
