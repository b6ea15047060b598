/*
Package httpserver hosts the dashboard's HTTP surface.

It builds a chi router with request logging, panic recovery and per-route
Prometheus instrumentation, mounts the embedded static assets and lets each
handler package register its own routes. Metrics are served on a separate
listener. When EnablePprof is set, the pprof API is mounted under /debug.

Shutdown is graceful: once it starts, responses carry "Connection: close" so
keep-alive clients reconnect elsewhere while in-flight requests complete.
*/
package httpserver
