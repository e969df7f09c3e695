package main

import "github.com/presencia-app/presencia/internal/admincli"

func main() {
	admincli.Execute()
}
