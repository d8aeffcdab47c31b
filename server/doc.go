package server

/*
Package `server` exposes a session to other processes. Clients connect to a unix socket, by default
`~/.tilewmsocket.<display>`, and send requests. Each request is a JSON document on its own line, naming an object
path, a command and its arguments; the server answers with one JSON line holding a status and a payload.

Only one connection is served at a time, and requests on it are evaluated one after the other: a client waits
for its response before sending the next request. Other clients queue up in the listen backlog.
A slow command blocks everyone, there is no timeout.

The client side lives in the `client` package.

The socket is only accessible by its owner, the server doesn't try to protect itself from malicious users.
*/
