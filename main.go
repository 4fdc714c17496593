package main

import "github.com/luashield/luashield/cmd/luashield"

func main() { luashield.Execute() }
