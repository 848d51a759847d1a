package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/viant/keymaster"
)

// Run fetches a single token per the command line arguments and prints it as
// wire JSON on stdout.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	if options.EnvFile != "" {
		if err := godotenv.Load(options.EnvFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}
	options.applyEnv()
	if options.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	broker, err := keymaster.New(&options.Options)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(options.TimeoutSeconds)*time.Second)
	defer cancel()
	issued, err := broker.GetToken(ctx, options.Scopes)
	if err != nil {
		return err
	}
	output := struct {
		ExpiresIn   int64    `json:"expiresIn"`
		AccessToken string   `json:"accessToken"`
		Scope       []string `json:"scope"`
	}{
		ExpiresIn:   int64(issued.Lifetime() / time.Second),
		AccessToken: issued.AccessToken(),
		Scope:       issued.Scopes(),
	}
	return json.NewEncoder(os.Stdout).Encode(output)
}
