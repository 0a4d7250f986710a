/*
Package resolver issues single, deadline-bounded DNS queries against
explicitly addressed servers. It never consults the resolver configured on
the host because that resolver may be intercepted or proxied, which would
make every answer derived from it untrustworthy.

The package exists mostly to present resolution as an interface which can be
mocked for testing purposes. Every other component of this program composes
calls to this one primitive against different servers, so centralizing the
deadline here is what keeps the whole pipeline bounded in time.
*/
package resolver
