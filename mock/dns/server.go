package dns

import (
	"github.com/miekg/dns"
)

// StartServer starts an in-process miekg DNS server on the supplied address
// and returns it together with the address it actually listens on. Callers
// normally pass "127.0.0.1:0" and query the returned address, which avoids
// colliding with anything else on the host.
func StartServer(net, serverAddr string, h dns.Handler) (*dns.Server, string) {
	srv := &dns.Server{Net: net, Addr: serverAddr, Handler: h}
	hasStarted := make(chan struct{})
	srv.NotifyStartedFunc = func() {
		hasStarted <- struct{}{}
	}

	go func() {
		err := srv.ListenAndServe()
		defer close(hasStarted)
		if err != nil { // Shutdown or real error?
			panic("Setup of Server failed:" + err.Error())
		}
	}()

	<-hasStarted // Wait for server, one way or the other

	addr := serverAddr
	if srv.PacketConn != nil {
		addr = srv.PacketConn.LocalAddr().String()
	} else if srv.Listener != nil {
		addr = srv.Listener.Addr().String()
	}

	return srv, addr
}
