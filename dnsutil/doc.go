/*
Package dnsutil contains small helper functions for manipulating domain names
which are shared by the resolution pipeline and the registrar client. None of
these functions touch the network.
*/
package dnsutil
