// Package dnsverify checks that an email domain can actually receive mail.
//
// A Verifier looks up the domain's MX records through a Resolver
// (*net.Resolver by default). Missing domains, empty MX sets and null MX
// records (RFC 7505) are reported as ErrNoMXRecords; anything else the
// resolver returns is wrapped in ErrDNSLookupFailed so callers can tell a
// bad address from a flaky network:
//
//	v := dnsverify.New(nil)
//	ok, err := v.HasMX(ctx, dnsverify.DomainOf("jean@lessencek.fr"))
//	switch {
//	case err != nil: // retry later
//	case !ok:        // reject the address
//	}
package dnsverify
