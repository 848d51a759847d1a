package cli

import (
	"os"

	"github.com/viant/keymaster"
)

type Options struct {
	keymaster.Options
	Scopes         []string `short:"s" long:"scope" description:"requested scope, repeatable" required:"true"`
	EnvFile        string   `long:"env-file" description:"env file loaded before resolving defaults"`
	TimeoutSeconds int      `long:"timeout" description:"fetch timeout in seconds" default:"30"`
}

// applyEnv backfills options left unset by flags from the environment.
func (o *Options) applyEnv() {
	if o.Channel.URL == "" {
		o.Channel.URL = os.Getenv("KEYMASTER_URL")
	}
	if o.ClientID == "" {
		o.ClientID = os.Getenv("KEYMASTER_CLIENT_ID")
	}
	if o.DeviceID == "" {
		o.DeviceID = os.Getenv("KEYMASTER_DEVICE_ID")
	}
	if o.Channel.Subject == "" {
		o.Channel.Subject = os.Getenv("KEYMASTER_SUBJECT")
	}
}
