/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "tgwire/cmd"

func main() {
	cmd.Execute()
}
