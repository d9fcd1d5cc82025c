// Package whispir is a client for the Whispir messaging API.
//
// A Client sends messages and lists workspaces over one pooled HTTP
// transport. Requests are addressed as
//
//	{scheme}://{host}[/workspaces/{id}]/{resource}?apikey={key}
//
// and carry basic credentials plus a versioned media type per resource.
// When the API rejects a request for exceeding the key's QPS quota, the
// request is repeated once after one second.
//
// # Basic Usage
//
//	c, err := whispir.New(whispir.Config{
//	    APIKey:   "KEY",
//	    Username: "user",
//	    Password: "pass",
//	})
//	if err != nil {
//	    return err
//	}
//	defer c.Close(ctx)
//
//	status, err := c.SendSimpleMessage(ctx, "", "61400000000", "Hello", "World")
//
// # Debug hosts
//
// Setting DebugHost (or calling SetDebugHost) sends requests to another host
// and relaxes credential scoping so basic credentials go to any host. Hosts
// containing "app" are addressed over plain http.
//
// # Connection failures
//
// A failed connection is logged and reported as status 0 with a nil error.
// Check Response.Obtained, or a zero status from Post, before trusting the
// result.
package whispir
