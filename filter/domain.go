package filter

import (
	"net/url"
	"strings"

	"github.com/fwojciec/urlx"
	"golang.org/x/net/publicsuffix"
)

var _ urlx.Filter = (*Domain)(nil)

// Domain keeps or drops URLs by host. With an allow list only URLs whose
// host is listed pass; otherwise URLs whose host is on the deny list are
// dropped. The allow list wins when both are given, and a Domain with
// neither passes everything through.
//
// Hosts compare case-insensitively as the full authority of the URL:
// user info and port included, so "http://user@a.com/" is not on a.com.
// MatchRegisteredDomain compares the host name alone.
type Domain struct {
	allow      map[string]struct{}
	deny       map[string]struct{}
	registered bool
}

// DomainOption configures a Domain filter.
type DomainOption func(*Domain)

// MatchRegisteredDomain compares registered domains (eTLD+1) instead of
// full hosts, so an allow entry "test.com" also admits "www.test.com".
func MatchRegisteredDomain() DomainOption {
	return func(d *Domain) {
		d.registered = true
	}
}

// NewDomain creates a Domain filter from allow and deny host lists.
func NewDomain(allow, deny []string, opts ...DomainOption) *Domain {
	d := &Domain{}
	for _, opt := range opts {
		opt(d)
	}
	d.allow = d.set(allow)
	d.deny = d.set(deny)
	return d
}

func (d *Domain) set(hosts []string) map[string]struct{} {
	if len(hosts) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		m[d.key(h)] = struct{}{}
	}
	return m
}

// key normalizes a host for comparison.
func (d *Domain) key(host string) string {
	host = strings.ToLower(host)
	if !d.registered {
		return host
	}
	// User info and port are not part of a registered domain.
	if u, err := url.Parse("//" + host); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld1
	}
	return host
}

// Filter returns the URLs that pass the allow or deny list.
func (d *Domain) Filter(urls []string) []string {
	switch {
	case d.allow != nil:
		return d.keep(urls, true)
	case d.deny != nil:
		return d.keep(urls, false)
	}
	return urls
}

func (d *Domain) keep(urls []string, allow bool) []string {
	set := d.deny
	if allow {
		set = d.allow
	}

	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		// Unparseable URLs have no host: never allowed, never denied.
		var host string
		if u, err := url.Parse(raw); err == nil {
			host = authority(u)
		}
		_, listed := set[d.key(host)]
		if listed == allow {
			out = append(out, raw)
		}
	}
	return out
}

// authority returns the user info, host and port of u as written.
func authority(u *url.URL) string {
	if u.User != nil {
		return u.User.String() + "@" + u.Host
	}
	return u.Host
}
