/*
Package discover determines the three pieces of live state the reconciler
needs: the caller's current public IPv4 address, the name servers which are
authoritative for the managed domain, and the current A record of each
managed name as held by those authoritative servers.

Everything here goes through explicitly addressed servers. The recursive
server used for bootstrap lookups is a well-known public resolver, not
whatever the host happens to be configured with, and record reads go to the
authoritative servers directly so no cache between us and the registrar can
serve up a stale answer.
*/
package discover
