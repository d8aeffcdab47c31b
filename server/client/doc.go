package client

/*
Package `client` talks to a running session over its unix socket.

A `Client` holds no connection: every call dials, sends one request line, waits for one response line and hangs up.
The session serves one connection at a time, so holding a connection open would lock other clients out.

Responses map to Go values and errors. A successful call returns the payload as decoded from JSON (numbers are
float64, objects are maps); an Error status is a `*command.CommandError` with the message of the session, and an
Exception status is a `*command.CommandException` with the remote trace.
Anything else, like a session that isn't running, is a transport error.
*/
