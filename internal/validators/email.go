package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// Resolver is the part of net.Resolver used for e-mail domain checks.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// EmailDomains accepts an address when its domain has an MX record or, failing
// that, any A/AAAA record.
type EmailDomains struct {
	resolver Resolver
	timeout  time.Duration
}

func NewEmailDomains(r Resolver, timeout time.Duration) *EmailDomains {
	if r == nil {
		r = net.DefaultResolver
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &EmailDomains{resolver: r, timeout: timeout}
}

func (d *EmailDomains) Valid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(email[at+1:])

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if mx, err := d.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if hosts, err := d.resolver.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return true
	}
	return false
}
