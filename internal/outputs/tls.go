package outputs

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"
	"strconv"
)

// TLSConfig holds what's needed to dial a remote output over TLS. The zero value is disabled
type TLSConfig struct {
	cert       *tls.Certificate
	caCerts    *x509.CertPool
	serverName string
	enabled    bool
}

func loadCAPool(caFile string) (*x509.CertPool, error) {
	pem, err := ioutil.ReadFile(caFile)
	if err != nil {
		return nil, err
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in `%s`", caFile)
	}

	return pool, nil
}

// NewTLSConfig enables TLS if a client cert or a CA file is given. The cert and key
// must be given together
func NewTLSConfig(caFile, certPath, keyPath, serverName string) (TLSConfig, error) {
	conf := TLSConfig{serverName: serverName}

	if (certPath == "") != (keyPath == "") {
		return TLSConfig{}, fmt.Errorf("invalid client cert - expected both `cert` and `key`, got cert=`%s` key=`%s`", certPath, keyPath)
	}

	if certPath != "" {
		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			return TLSConfig{}, err
		}

		conf.cert = &cert
		conf.enabled = true
	}

	if caFile != "" {
		pool, err := loadCAPool(caFile)
		if err != nil {
			return TLSConfig{}, err
		}

		conf.caCerts = pool
		conf.enabled = true
	}

	return conf, nil
}

// NewTLSConfigFromRaw reads `cafile`, `cert`, `key`, `server_name` and `tls`. tls=true
// with nothing else dials with the system roots
func NewTLSConfigFromRaw(raw map[string]string) (TLSConfig, error) {
	conf, err := NewTLSConfig(raw["cafile"], raw["cert"], raw["key"], raw["server_name"])
	if err != nil {
		return TLSConfig{}, err
	}

	if rawEnabled, ok := raw["tls"]; ok {
		enabled, err := strconv.ParseBool(rawEnabled)
		if err != nil {
			return TLSConfig{}, fmt.Errorf("invalid bool `%s` for tls - expected true or false", rawEnabled)
		}

		conf.enabled = conf.enabled || enabled
	}

	return conf, nil
}

func (t *TLSConfig) IsEnabled() bool {
	return t != nil && t.enabled
}

// ClientConfig returns the crypto/tls config to dial with, or nil if TLS is disabled
func (t *TLSConfig) ClientConfig() *tls.Config {
	if !t.IsEnabled() {
		return nil
	}

	conf := &tls.Config{
		ServerName: t.serverName,
		MinVersion: tls.VersionTLS12,
		RootCAs:    t.caCerts,
	}

	if t.cert != nil {
		conf.Certificates = []tls.Certificate{*t.cert}
	}

	return conf
}
