package runtime

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/grpc/credentials"
)

// Well-known filenames of the TLS bundle a function is deployed with.
const (
	certFile = "tls.crt"
	keyFile  = "tls.key"
	caFile   = "ca.crt"
)

// LoadCredentials loads mutual TLS server credentials from a directory
// containing tls.crt, tls.key and ca.crt. tls.crt and tls.key are the
// server's PEM-encoded certificate and private key. ca.crt is a PEM-encoded
// CA certificate used to authenticate callers; every client must present a
// certificate that verifies against it.
//
// An empty dir means no credentials were configured and returns (nil, nil).
// A non-empty dir with any artifact missing or unparsable is an error.
func LoadCredentials(dir string) (credentials.TransportCredentials, error) {
	if dir == "" {
		return nil, nil
	}

	crt, err := tls.LoadX509KeyPair(filepath.Join(dir, certFile), filepath.Join(dir, keyFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load server certificate and key from %s: %w", dir, err)
	}

	ca, err := os.ReadFile(filepath.Join(dir, caFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("failed to parse CA certificate from %s", filepath.Join(dir, caFile))
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{crt},
		ClientCAs:    pool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		MinVersion:   tls.VersionTLS12,
	}), nil
}
