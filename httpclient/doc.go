// Package httpclient executes requests against the Whispir API over a pooled,
// reusable transport.
//
// The Adapter owns one http.Transport for its whole lifetime. It applies
// scoped basic credentials, routes through an optional proxy, and performs at
// most one retry when the API answers 403 with the
// X-Mashery-Error-Code: ERR_403_DEVELOPER_OVER_QPS header.
//
// # Basic Usage
//
//	a, err := httpclient.New(httpclient.Config{
//	    Retry: httpclient.OverQPSRetryConfig(),
//	})
//	defer a.Close(ctx)
//
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    URL:    "https://api.whispir.com/workspaces?apikey=KEY",
//	    Auth:   httpclient.BasicAuth("user", "pass").Scoped(httpclient.HostScope("api.whispir.com")),
//	})
//
// # Failure contract
//
// A transport failure does not return an error. It is logged and Do returns a
// Response with StatusCode 0 whose TransportErr holds the cause; use
// Response.Obtained to tell the two apart. A failure to release the response
// after the exchange is returned as a RESOURCE_RELEASE_ERROR together with the
// response.
package httpclient
