package example

import (
	"context"
	"fmt"
	"log"

	"github.com/viant/keymaster"
	"github.com/viant/keymaster/issuertest"
)

func Usage_Example() {

	issuer, err := issuertest.NewHTTPTestServer()
	if err != nil {
		log.Fatalf("Failed to start issuer: %v", err)
	}
	defer issuer.Close()

	aBroker, err := keymaster.New(&keymaster.Options{
		Channel: keymaster.ChannelOptions{ChannelHTTP: keymaster.ChannelHTTP{URL: issuer.URL()}},
	})
	if err != nil {
		log.Fatalf("Failed to create broker: %v", err)
	}

	tok, err := aBroker.GetToken(context.Background(), []string{"playlist-read-private"})
	if err != nil {
		log.Fatalf("Failed to fetch token: %v", err)
	}
	fmt.Printf("access token: %v expires at: %v\n", tok.AccessToken(), tok.ExpiresAt())
}
