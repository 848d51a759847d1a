package main

import (
	"github.com/viant/keymaster/cli"
	_ "github.com/viant/scy/kms/blowfish"
	"log"
	"os"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
