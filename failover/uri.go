// Package failover parses the failover: broker-list URI scheme and
// hands out a reconnect policy that picks the next broker endpoint over
// time (spec §4.4). It is a standalone component: the session and
// codec packages do not depend on it, and it is consulted by whatever
// surrounding transport the host provides (spec §1, §2).
package failover

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Broker is one tcp://host:port endpoint parsed out of a failover URI.
type Broker struct {
	Host string
	Port int
}

// Config is the parsed result of a failover: URI: the broker list plus
// the recognized reconnect-policy options (spec §4.4).
type Config struct {
	Brokers []Broker

	InitialReconnectDelayMS     int
	MaxReconnectDelayMS         int
	UseExponentialBackOff       bool
	BackOffMultiplier           float64
	MaxReconnectAttempts        int
	StartupMaxReconnectAttempts int
	Randomize                   bool
	PriorityBackup              bool
}

// defaultConfig returns a Config with every option at its spec-mandated
// default (spec §4.4 "Recognized options").
func defaultConfig() *Config {
	return &Config{
		InitialReconnectDelayMS:     10,
		MaxReconnectDelayMS:         30000,
		UseExponentialBackOff:       true,
		BackOffMultiplier:           2.0,
		MaxReconnectAttempts:        -1,
		StartupMaxReconnectAttempts: 0,
		Randomize:                   true,
		PriorityBackup:              false,
	}
}

// Error kinds for this package (spec §4.4, §7 "Failover errors").
const (
	KindMalformedURI   = "malformed-uri"
	KindUnknownOption  = "unknown-option"
	KindBadOptionValue = "bad-option-value"
)

// Error is the failover package's error type. Parse errors are fatal at
// construction (spec §7).
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return "stomp: failover: " + e.Kind + ": " + e.Message
}

func fail(kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

const scheme = "failover:"

// Parse parses a failover: URI of the form
// "failover:(tcp://host1:port1,tcp://host2:port2,...)?opt=val&..." or
// the equivalent unparenthesized single-broker short form
// "failover:tcp://host:port" (spec §4.4).
func Parse(uri string) (*Config, error) {
	if !strings.HasPrefix(uri, scheme) {
		return nil, fail(KindMalformedURI, "missing failover: scheme prefix")
	}
	rest := uri[len(scheme):]

	brokerPart, queryPart := rest, ""
	if idx := strings.IndexByte(rest, '?'); idx != -1 {
		brokerPart, queryPart = rest[:idx], rest[idx+1:]
	}

	brokerPart = strings.TrimSpace(brokerPart)
	if strings.HasPrefix(brokerPart, "(") {
		if !strings.HasSuffix(brokerPart, ")") {
			return nil, fail(KindMalformedURI, "unterminated broker list: missing ')'")
		}
		brokerPart = brokerPart[1 : len(brokerPart)-1]
	}
	if brokerPart == "" {
		return nil, fail(KindMalformedURI, "no brokers specified")
	}

	cfg := defaultConfig()
	for _, part := range strings.Split(brokerPart, ",") {
		b, err := parseBroker(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		cfg.Brokers = append(cfg.Brokers, b)
	}

	if queryPart != "" {
		if err := applyOptions(cfg, queryPart); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func parseBroker(s string) (Broker, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Broker{}, errors.Wrap(fail(KindMalformedURI, "invalid broker URI: "+s), err.Error())
	}
	if u.Scheme != "tcp" {
		return Broker{}, fail(KindMalformedURI, "unsupported broker scheme (want tcp): "+s)
	}
	host := u.Hostname()
	if host == "" {
		return Broker{}, fail(KindMalformedURI, "missing host in broker URI: "+s)
	}
	portStr := u.Port()
	if portStr == "" {
		return Broker{}, fail(KindMalformedURI, "missing port in broker URI: "+s)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Broker{}, fail(KindMalformedURI, "invalid port in broker URI: "+s)
	}
	return Broker{Host: host, Port: port}, nil
}

func applyOptions(cfg *Config, query string) error {
	values, err := url.ParseQuery(query)
	if err != nil {
		return fail(KindMalformedURI, "invalid option query string: "+err.Error())
	}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		val := vals[len(vals)-1]
		if err := applyOption(cfg, key, val); err != nil {
			return err
		}
	}
	return nil
}

func applyOption(cfg *Config, key, val string) error {
	switch key {
	case "initialReconnectDelay":
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return fail(KindBadOptionValue, "initialReconnectDelay: "+val)
		}
		cfg.InitialReconnectDelayMS = n
	case "maxReconnectDelay":
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return fail(KindBadOptionValue, "maxReconnectDelay: "+val)
		}
		cfg.MaxReconnectDelayMS = n
	case "useExponentialBackOff":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fail(KindBadOptionValue, "useExponentialBackOff: "+val)
		}
		cfg.UseExponentialBackOff = b
	case "backOffMultiplier":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fail(KindBadOptionValue, "backOffMultiplier: "+val)
		}
		cfg.BackOffMultiplier = f
	case "maxReconnectAttempts":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fail(KindBadOptionValue, "maxReconnectAttempts: "+val)
		}
		cfg.MaxReconnectAttempts = n
	case "startupMaxReconnectAttempts":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fail(KindBadOptionValue, "startupMaxReconnectAttempts: "+val)
		}
		cfg.StartupMaxReconnectAttempts = n
	case "randomize":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fail(KindBadOptionValue, "randomize: "+val)
		}
		cfg.Randomize = b
	case "priorityBackup":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fail(KindBadOptionValue, "priorityBackup: "+val)
		}
		cfg.PriorityBackup = b
	default:
		return fail(KindUnknownOption, key)
	}
	return nil
}
