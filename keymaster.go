package keymaster

import (
	"fmt"

	"github.com/viant/jsonrpc/transport/client/stdio"

	"github.com/viant/keymaster/broker"
	"github.com/viant/keymaster/channel"
	channelhttp "github.com/viant/keymaster/channel/http"
	channelnats "github.com/viant/keymaster/channel/nats"
	channelrpc "github.com/viant/keymaster/channel/rpc"
)

// Options
//
// defines options for configuring a token broker.
type Options struct {
	ClientID     string         `yaml:"clientId,omitempty" json:"clientId,omitempty" short:"c" long:"client-id" description:"issuer client id"`
	DeviceID     string         `yaml:"deviceId,omitempty" json:"deviceId,omitempty" short:"d" long:"device-id" description:"device id"`
	Channel      ChannelOptions `yaml:"channel" json:"channel"`
	SingleFlight bool           `yaml:"singleFlight,omitempty" json:"singleFlight,omitempty" long:"single-flight" description:"collapse duplicate concurrent fetches"`
	Verbose      bool           `yaml:"verbose,omitempty" json:"verbose,omitempty" short:"v" long:"verbose" description:"verbose logging"`
}

// ChannelOptions defines issuer channel options for a token broker.
type ChannelOptions struct {
	Type        string `yaml:"type" json:"type" short:"t" long:"channel-type" description:"issuer channel type, e.g., http, rpc, nats" choice:"http" choice:"rpc" choice:"nats"`
	ChannelHTTP `yaml:",inline"`
	ChannelRPC  `yaml:",inline"`
	ChannelNATS `yaml:",inline"`
}

// ChannelHTTP defines options for an HTTP issuer channel.
type ChannelHTTP struct {
	URL             string `yaml:"url,omitempty" json:"url,omitempty" short:"u" long:"url" description:"issuer base URL"`
	Bearer          string `yaml:"bearer,omitempty" json:"bearer,omitempty" long:"bearer" description:"static session credential"`
	CredentialsFile string `yaml:"credentialsFile,omitempty" json:"credentialsFile,omitempty" long:"credentials-file" description:"session credential file, hot reloaded on change"`
	SecretsURL      string `yaml:"secretsURL,omitempty" json:"secretsURL,omitempty" long:"secrets-url" description:"scy secret resource URL"`
	SecretsKey      string `yaml:"secretsKey,omitempty" json:"secretsKey,omitempty" long:"secrets-key" description:"scy secret key"`
}

// ChannelRPC defines options for a jsonrpc issuer channel over stdio.
type ChannelRPC struct {
	Command   string   `yaml:"command,omitempty" json:"command,omitempty" short:"C" long:"command" description:"issuer command"`
	Arguments []string `yaml:"arguments,omitempty" json:"arguments,omitempty" short:"A" long:"argument" description:"issuer command arguments"`
}

// ChannelNATS defines options for a NATS issuer channel.
type ChannelNATS struct {
	NATSURL string `yaml:"natsURL,omitempty" json:"natsURL,omitempty" long:"nats-url" description:"nats server URL"`
	Subject string `yaml:"subject,omitempty" json:"subject,omitempty" long:"subject" description:"nats request subject"`
}

// Init infers the channel type when it is unambiguous from the options.
func (o *Options) Init() {
	if o.Channel.Type == "" {
		switch {
		case o.Channel.URL != "":
			o.Channel.Type = "http"
		case o.Channel.Command != "":
			o.Channel.Type = "rpc"
		case o.Channel.Subject != "":
			o.Channel.Type = "nats"
		}
	}
}

// New creates a token broker with the issuer channel configured via Options.
func New(options *Options, opts ...broker.Option) (*broker.Broker, error) {
	options.Init()
	ch, err := options.getChannel()
	if err != nil {
		return nil, err
	}
	return broker.New(ch, options.brokerOptions(opts...)...), nil
}

// getChannel constructs an issuer channel based on Options.Channel.
func (o *Options) getChannel() (channel.Channel, error) {
	switch o.Channel.Type {
	case "http":
		httpOptions := o.Channel.ChannelHTTP
		if httpOptions.URL == "" {
			return nil, fmt.Errorf("URL is required for http channel")
		}
		var opts []channelhttp.Option
		if httpOptions.Bearer != "" {
			opts = append(opts, channelhttp.WithBearer(httpOptions.Bearer))
		}
		if httpOptions.CredentialsFile != "" {
			opts = append(opts, channelhttp.WithCredentialsFile(httpOptions.CredentialsFile))
		}
		if httpOptions.SecretsURL != "" {
			opts = append(opts, channelhttp.WithSecrets(httpOptions.SecretsURL, httpOptions.SecretsKey))
		}
		ret, err := channelhttp.New(httpOptions.URL, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create http channel: %w", err)
		}
		return ret, nil
	case "rpc":
		rpcOptions := o.Channel.ChannelRPC
		if rpcOptions.Command == "" {
			return nil, fmt.Errorf("command is required for rpc channel")
		}
		aTransport, err := stdio.New(rpcOptions.Command, stdio.WithArguments(rpcOptions.Arguments...))
		if err != nil {
			return nil, fmt.Errorf("failed to create rpc transport: %w", err)
		}
		return channelrpc.New(aTransport), nil
	case "nats":
		natsOptions := o.Channel.ChannelNATS
		if natsOptions.Subject == "" {
			return nil, fmt.Errorf("subject is required for nats channel")
		}
		ret, err := channelnats.Dial(natsOptions.NATSURL, natsOptions.Subject)
		if err != nil {
			return nil, fmt.Errorf("failed to create nats channel: %w", err)
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("no channel configured")
	}
}

// brokerOptions builds broker options from Options, appending any caller supplied ones.
func (o *Options) brokerOptions(opts ...broker.Option) []broker.Option {
	var result []broker.Option
	if o.ClientID != "" {
		result = append(result, broker.WithClientID(o.ClientID))
	}
	if o.DeviceID != "" {
		result = append(result, broker.WithDeviceID(o.DeviceID))
	}
	if o.SingleFlight {
		result = append(result, broker.WithSingleFlight())
	}
	return append(result, opts...)
}
