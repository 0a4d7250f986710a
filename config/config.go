/*
Package config reads and validates the environment-provided configuration.
Validation happens in full before any network I/O elsewhere in the program;
a malformed environment fails the run immediately.

Recognized variables:

	GANDI_API_KEY        registrar credential (required)
	DOMAIN_FQDN          managed domain, absolute, trailing dot (required)
	DOMAIN_DYNAMIC_ITEMS comma-separated record labels (required)
	DOMAIN_IP            skip public IP discovery and use this IPv4 (optional)
*/
package config

import (
	"net"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/bwolf/gandi-dns-update/dnsutil"
)

const (
	envAPIKey = "gandi_api_key"
	envFQDN   = "domain_fqdn"
	envItems  = "domain_dynamic_items"
	envIP     = "domain_ip"
)

// Config is the immutable per-run configuration. Items keeps the order given
// in the environment so processing and logging are deterministic.
type Config struct {
	APIKey     string
	FQDN       string
	Items      []string
	OverrideIP net.IP // nil means discover the public IP live
}

// FromEnv loads and validates the configuration from the environment.
func FromEnv() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for _, key := range []string{envAPIKey, envFQDN, envItems, envIP} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrap(err, "configuration")
		}
	}

	cfg := &Config{
		APIKey: v.GetString(envAPIKey),
		FQDN:   v.GetString(envFQDN),
	}

	if cfg.APIKey == "" {
		return nil, errors.Errorf("configuration: %s is not set", strings.ToUpper(envAPIKey))
	}

	if cfg.FQDN == "" {
		return nil, errors.Errorf("configuration: %s is not set", strings.ToUpper(envFQDN))
	}
	if !dnsutil.IsFQDN(cfg.FQDN) {
		return nil, errors.Errorf("configuration: %s %q does not end with '.'",
			strings.ToUpper(envFQDN), cfg.FQDN)
	}

	items, err := parseItems(v.GetString(envItems))
	if err != nil {
		return nil, err
	}
	cfg.Items = items

	if s := v.GetString(envIP); s != "" {
		ip := net.ParseIP(s)
		if ip == nil || ip.To4() == nil {
			return nil, errors.Errorf("configuration: %s %q is not an IPv4 address",
				strings.ToUpper(envIP), s)
		}
		cfg.OverrideIP = ip.To4()
	}

	return cfg, nil
}

func parseItems(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.Errorf("configuration: %s is not set", strings.ToUpper(envItems))
	}

	seen := make(map[string]struct{})
	var items []string
	for _, raw := range strings.Split(s, ",") {
		item := strings.TrimSpace(raw)
		if item == "" {
			return nil, errors.Errorf("configuration: %s %q contains an empty label",
				strings.ToUpper(envItems), s)
		}
		if strings.Contains(item, ".") {
			return nil, errors.Errorf("configuration: label %q must not contain '.'", item)
		}
		if _, dup := seen[item]; dup {
			return nil, errors.Errorf("configuration: duplicate label %q", item)
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}

	return items, nil
}
